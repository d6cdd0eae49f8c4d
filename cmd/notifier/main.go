// The notifier drains the workflow event queue and alerts the people
// involved: approvers about new requests, requesters about decisions.
// Delivery is mocked until the messaging gateway is available.
package main

import (
	"encoding/json"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/taeyeong15/marketing-backend/internal/config"
	"github.com/taeyeong15/marketing-backend/internal/events"
	"github.com/taeyeong15/marketing-backend/internal/logx"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logx.L().Info("no .env file found, relying on OS environment variables")
	}
	cfg := config.MustLoad()
	log := logx.L()
	defer logx.Sync()

	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required for the notifier")
	}

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatalw("failed to connect to broker", "error", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalw("failed to open channel", "error", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(cfg.EventQueue, true, false, false, false, nil)
	if err != nil {
		log.Fatalw("failed to declare queue", "error", err)
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalw("failed to register consumer", "error", err)
	}

	log.Infow("notifier running", "queue", cfg.EventQueue)
	for d := range msgs {
		var ev events.Event
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			log.Warnw("invalid event payload", "error", err)
			d.Ack(false)
			continue
		}

		if err := notify(ev, log); err != nil {
			log.Warnw("failed to deliver notification", "type", ev.Type, "error", err)
			d.Nack(false, true)
			continue
		}
		d.Ack(false)
	}
}

func notify(ev events.Event, log *zap.SugaredLogger) error {
	switch ev.Type {
	case events.TypeApprovalRequested:
		log.Infow("notify approver: approval requested",
			"campaign_id", ev.CampaignID, "approval_id", ev.ApprovalID, "requester", ev.Actor)
	case events.TypeApprovalResolved:
		log.Infow("notify requester: approval resolved",
			"campaign_id", ev.CampaignID, "approval_id", ev.ApprovalID, "result", ev.Status)
	case events.TypeCampaignDeleted:
		log.Infow("notify owners: campaign deleted", "campaign_id", ev.CampaignID, "actor", ev.Actor)
	default:
		log.Infow("unknown event type, dropping", "type", ev.Type)
	}
	return nil
}
