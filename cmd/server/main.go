package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/taeyeong15/marketing-backend/internal/config"
	"github.com/taeyeong15/marketing-backend/internal/controller"
	"github.com/taeyeong15/marketing-backend/internal/db"
	"github.com/taeyeong15/marketing-backend/internal/events"
	"github.com/taeyeong15/marketing-backend/internal/logx"
	"github.com/taeyeong15/marketing-backend/internal/metrics"
	"github.com/taeyeong15/marketing-backend/internal/middleware"
	"github.com/taeyeong15/marketing-backend/internal/repository"
	"github.com/taeyeong15/marketing-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logx.L().Info("no .env file found, relying on OS environment variables")
	}
	cfg := config.MustLoad()
	log := logx.L()
	defer logx.Sync()

	conn, err := db.Open(cfg.DBDSN)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer conn.Close()
	log.Info("connected to database")

	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewAMQPPublisher(cfg.AMQPURL, cfg.EventQueue)
		if err != nil {
			log.Fatalw("failed to connect to broker", "error", err)
		}
		log.Infow("publishing workflow events", "queue", cfg.EventQueue)
	} else {
		publisher = events.NewInMemoryPublisher()
		log.Info("AMQP_URL not set, workflow events stay in memory")
	}
	defer publisher.Close()

	campaignRepo := &repository.CampaignRepository{DB: conn}
	approvalRepo := &repository.ApprovalRepository{DB: conn}
	groupRepo := &repository.CustomerGroupRepository{DB: conn}
	offerRepo := &repository.OfferRepository{DB: conn}
	scriptRepo := &repository.ScriptRepository{DB: conn}
	historyRepo := &repository.HistoryRepository{DB: conn}
	codeRepo := &repository.CommonCodeRepository{DB: conn}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		HistoryRepo:  historyRepo,
		Events:       publisher,
		Log:          log,
		MaxPageSize:  cfg.MaxPageSize,
	}
	approvalService := &service.ApprovalService{
		ApprovalRepo:        approvalRepo,
		CampaignRepo:        campaignRepo,
		Events:              publisher,
		Log:                 log,
		RejectCommentMinLen: cfg.RejectCommentMinLen,
		MaxPageSize:         cfg.MaxPageSize,
	}
	groupService := &service.CustomerGroupService{GroupRepo: groupRepo, Log: log, MaxPageSize: cfg.MaxPageSize}
	offerService := &service.OfferService{OfferRepo: offerRepo, Log: log, MaxPageSize: cfg.MaxPageSize}
	scriptService := &service.ScriptService{ScriptRepo: scriptRepo, Log: log, MaxPageSize: cfg.MaxPageSize}
	historyService := &service.HistoryService{HistoryRepo: historyRepo, MaxPageSize: cfg.MaxPageSize}

	campaignController := &controller.CampaignController{CampaignService: campaignService}
	approvalController := &controller.ApprovalController{ApprovalService: approvalService}
	groupController := &controller.CustomerGroupController{GroupService: groupService}
	offerController := &controller.OfferController{OfferService: offerService}
	scriptController := &controller.ScriptController{ScriptService: scriptService}
	historyController := &controller.HistoryController{HistoryService: historyService}
	codeController := &controller.CommonCodeController{Repo: codeRepo}

	r := chi.NewRouter()
	r.Use(middleware.Identity)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics)

	// Campaign routes
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/{id}", campaignController.GetCampaign)
	r.Put("/campaigns/{id}", campaignController.UpdateCampaign)
	r.Delete("/campaigns/{id}", campaignController.DeleteCampaign)
	r.Put("/campaigns/{id}/status", campaignController.SetCampaignStatus)
	r.Post("/campaigns/approval-request", approvalController.RequestApproval)

	// Approval inbox
	r.Get("/pending-campaigns", approvalController.ListPending)
	r.Put("/pending-campaigns", approvalController.ResolveApproval)

	// Customer groups
	r.Post("/customer-groups", groupController.CreateGroup)
	r.Get("/customer-groups", groupController.ListGroups)
	r.Get("/customer-groups/{id}", groupController.GetGroup)
	r.Put("/customer-groups/{id}", groupController.UpdateGroup)
	r.Put("/customer-groups/{id}/status", groupController.SetGroupStatus)
	r.Get("/customer-groups/{id}/can-deactivate", groupController.CheckDeactivation)

	// Offers
	r.Post("/offers", offerController.CreateOffer)
	r.Get("/offers", offerController.ListOffers)
	r.Get("/offers/{id}", offerController.GetOffer)
	r.Put("/offers/{id}", offerController.UpdateOffer)
	r.Delete("/offers/{id}", offerController.DeleteOffer)
	r.Get("/offers/{id}/can-delete", offerController.CheckDeletion)

	// Scripts
	r.Post("/scripts", scriptController.CreateScript)
	r.Get("/scripts", scriptController.ListScripts)
	r.Get("/scripts/{id}", scriptController.GetScript)
	r.Put("/scripts/{id}", scriptController.UpdateScript)
	r.Delete("/scripts/{id}", scriptController.DeleteScript)

	// Audit + reference data
	r.Get("/campaign-history", historyController.ListHistory)
	r.Get("/common-codes", codeController.Lookup)

	r.Handle("/metrics", metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	log.Infow("server running", "port", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
