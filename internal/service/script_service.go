package service

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/taeyeong15/marketing-backend/internal/apperrors"
	"github.com/taeyeong15/marketing-backend/internal/model"
	"github.com/taeyeong15/marketing-backend/internal/repository"
)

type ScriptService struct {
	ScriptRepo  repository.ScriptRepositoryInterface
	Log         *zap.SugaredLogger
	MaxPageSize int
}

var variablePattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// ExtractVariables scans the template left-to-right for {{name}} tokens and
// returns the distinct names in first-occurrence order. Case-sensitive, no
// nested braces. The result fully replaces the stored list on every content
// write; it is never merged with a previous list.
func ExtractVariables(content string) []string {
	seen := map[string]bool{}
	vars := []string{}
	for _, m := range variablePattern.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		vars = append(vars, name)
	}
	return vars
}

func validateScript(sc *model.Script) error {
	if strings.TrimSpace(sc.Name) == "" {
		return apperrors.NewValidation("script name is required")
	}
	if sc.Type == "" {
		return apperrors.NewValidation("script channel type is required")
	}
	if strings.TrimSpace(sc.Content) == "" {
		return apperrors.NewValidation("script content is required")
	}
	if sc.Type == "EMAIL" && strings.TrimSpace(sc.Subject) == "" {
		return apperrors.NewValidation("email scripts require a subject")
	}
	return nil
}

func (s *ScriptService) Create(sc *model.Script, actor string) error {
	if err := validateScript(sc); err != nil {
		return err
	}
	sc.Variables = ExtractVariables(sc.Content)
	sc.CreatedBy = actor
	sc.UpdatedBy = actor
	if err := s.ScriptRepo.Create(sc); err != nil {
		return err
	}
	s.Log.Infow("script created", "script_id", sc.ID, "variables", sc.Variables, "actor", actor)
	return nil
}

func (s *ScriptService) Update(sc *model.Script, actor string) error {
	if err := validateScript(sc); err != nil {
		return err
	}
	sc.Variables = ExtractVariables(sc.Content)
	sc.UpdatedBy = actor
	return s.ScriptRepo.Update(sc)
}

func (s *ScriptService) Get(id int) (*model.Script, error) {
	return s.ScriptRepo.GetByID(id)
}

func (s *ScriptService) List(p model.ListParams, scriptType, status string) ([]*model.Script, model.Pagination, error) {
	p = clampParams(p, s.MaxPageSize)
	items, total, err := s.ScriptRepo.List(p, scriptType, status)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return items, model.NewPagination(p.Page, p.Limit, total), nil
}

func (s *ScriptService) Delete(id int, actor string) error {
	if err := s.ScriptRepo.Delete(id, actor); err != nil {
		return err
	}
	s.Log.Infow("script deleted", "script_id", id, "actor", actor)
	return nil
}
