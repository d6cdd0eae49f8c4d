package service_test

import (
	"time"

	"github.com/taeyeong15/marketing-backend/internal/model"
)

// Hand-rolled mocks for the repository interfaces. Each call is counted so
// tests can assert that validation failures never reach the store.

type mockCampaignRepo struct {
	createCalls int
	updateCalls int
	deleteCalls int
	statusCalls int

	getByIDFn func(id int) (*model.Campaign, error)
	createFn  func(c *model.Campaign) error
	updateFn  func(c *model.Campaign, isDraft bool) error
	deleteFn  func(id int, actor string) error
	setOpFn   func(id int, to model.CampaignStatus, actor string) (model.CampaignStatus, error)
	listFn    func(p model.ListParams, status, campaignType string) ([]*model.Campaign, int, error)
}

func (m *mockCampaignRepo) Create(c *model.Campaign) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(c)
	}
	c.ID = 1
	c.CreatedAt = time.Now()
	return nil
}

func (m *mockCampaignRepo) Update(c *model.Campaign, isDraft bool) error {
	m.updateCalls++
	if m.updateFn != nil {
		return m.updateFn(c, isDraft)
	}
	return nil
}

func (m *mockCampaignRepo) GetByID(id int) (*model.Campaign, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return &model.Campaign{ID: id, Status: model.StatusPlanning}, nil
}

func (m *mockCampaignRepo) List(p model.ListParams, status, campaignType string) ([]*model.Campaign, int, error) {
	if m.listFn != nil {
		return m.listFn(p, status, campaignType)
	}
	return []*model.Campaign{}, 0, nil
}

func (m *mockCampaignRepo) Delete(id int, actor string) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(id, actor)
	}
	return nil
}

func (m *mockCampaignRepo) SetOperationalStatus(id int, to model.CampaignStatus, actor string) (model.CampaignStatus, error) {
	m.statusCalls++
	if m.setOpFn != nil {
		return m.setOpFn(id, to, actor)
	}
	return model.StatusApproved, nil
}

type mockApprovalRepo struct {
	createCalls  int
	resolveCalls int

	createRequestFn func(req *model.PendingApproval) (model.CampaignStatus, error)
	resolveFn       func(id int, to model.ApprovalStatus, approverID, comment string) (*model.PendingApproval, model.CampaignStatus, error)
	listPendingFn   func(p model.ListParams, priority string) ([]*model.PendingCampaign, int, error)
}

func (m *mockApprovalRepo) CreateRequest(req *model.PendingApproval) (model.CampaignStatus, error) {
	m.createCalls++
	if m.createRequestFn != nil {
		return m.createRequestFn(req)
	}
	req.ID = 1
	req.CreatedAt = time.Now()
	return model.StatusPlanning, nil
}

func (m *mockApprovalRepo) Resolve(id int, to model.ApprovalStatus, approverID, comment string) (*model.PendingApproval, model.CampaignStatus, error) {
	m.resolveCalls++
	if m.resolveFn != nil {
		return m.resolveFn(id, to, approverID, comment)
	}
	now := time.Now()
	return &model.PendingApproval{
		ID: id, CampaignID: 1, ApprovalStatus: to,
		ApproverID: approverID, ApprovalComment: comment, ApprovalDate: &now,
	}, model.StatusPendingApproval, nil
}

func (m *mockApprovalRepo) ListPending(p model.ListParams, priority string) ([]*model.PendingCampaign, int, error) {
	if m.listPendingFn != nil {
		return m.listPendingFn(p, priority)
	}
	return []*model.PendingCampaign{}, 0, nil
}

type mockGroupRepo struct {
	setStatusCalls int

	getByIDFn   func(id int) (*model.CustomerGroup, error)
	setStatusFn func(id int, status, actor string) (bool, error)
	blockingFn  func(groupID int) ([]model.BlockingCampaign, error)
}

func (m *mockGroupRepo) Create(g *model.CustomerGroup) error {
	g.ID = 1
	return nil
}

func (m *mockGroupRepo) Update(g *model.CustomerGroup) error { return nil }

func (m *mockGroupRepo) GetByID(id int) (*model.CustomerGroup, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return &model.CustomerGroup{ID: id, Status: model.GroupStatusActive, UseYn: "Y"}, nil
}

func (m *mockGroupRepo) List(p model.ListParams, status string) ([]*model.CustomerGroup, int, error) {
	return []*model.CustomerGroup{}, 0, nil
}

func (m *mockGroupRepo) SetStatus(id int, status, actor string) (bool, error) {
	m.setStatusCalls++
	if m.setStatusFn != nil {
		return m.setStatusFn(id, status, actor)
	}
	return true, nil
}

func (m *mockGroupRepo) BlockingCampaigns(groupID int) ([]model.BlockingCampaign, error) {
	if m.blockingFn != nil {
		return m.blockingFn(groupID)
	}
	return []model.BlockingCampaign{}, nil
}

type mockScriptRepo struct {
	created *model.Script
	updated *model.Script
}

func (m *mockScriptRepo) Create(s *model.Script) error {
	s.ID = 1
	m.created = s
	return nil
}

func (m *mockScriptRepo) Update(s *model.Script) error {
	m.updated = s
	return nil
}

func (m *mockScriptRepo) GetByID(id int) (*model.Script, error) {
	if m.updated != nil {
		return m.updated, nil
	}
	return &model.Script{ID: id}, nil
}

func (m *mockScriptRepo) List(p model.ListParams, scriptType, status string) ([]*model.Script, int, error) {
	return []*model.Script{}, 0, nil
}

func (m *mockScriptRepo) Delete(id int, actor string) error { return nil }

type mockHistoryRepo struct{}

func (m *mockHistoryRepo) List(p model.ListParams, actionType string, from, to *time.Time) ([]*model.CampaignHistory, int, error) {
	return []*model.CampaignHistory{}, 0, nil
}

func (m *mockHistoryRepo) ListByCampaign(campaignID int) ([]*model.CampaignHistory, error) {
	return []*model.CampaignHistory{}, nil
}
