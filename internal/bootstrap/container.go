package bootstrap

import (
	"fmt"
	"log"

	"doc-assistant-be/internal/config"
	"doc-assistant-be/internal/controller"
	"doc-assistant-be/internal/graph"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/pkg/mailer"
	"doc-assistant-be/internal/pkg/serverutils"
	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/internal/service"
	"doc-assistant-be/pkg/answer"
	"doc-assistant-be/pkg/conversation"
	"doc-assistant-be/pkg/doccontext"
	"doc-assistant-be/pkg/events"
	"doc-assistant-be/pkg/llm"
	pktNats "doc-assistant-be/pkg/nats"
	"doc-assistant-be/pkg/tenant/access"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

// devJWTSecret signs tokens outside production when JWT_SECRET is unset.
const devJWTSecret = "dev-only-insecure-secret"

type Container struct {
	// Controllers
	GraphQLController controller.IGraphQLController
	HealthController  controller.IHealthController

	// Background Services (Exposed for main.go to run); nil when mail is disabled
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		sysLogger.Warn("BOOTSTRAP", "JWT_SECRET not set, using development secret", nil)
		secret = devJWTSecret
	}
	issuer := serverutils.NewTokenIssuer(secret, cfg.Auth.JWTExpiration)

	// 2. Model backend
	dispatcher, err := answer.NewDispatcher(llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLM.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}
	if dispatcher.Err() != nil {
		sysLogger.Warn("BOOTSTRAP", "LLM provider unusable, questions will fail", map[string]interface{}{
			"provider": cfg.LLM.Provider,
			"error":    dispatcher.Err().Error(),
		})
	} else {
		sysLogger.Info("BOOTSTRAP", "LLM provider selected", map[string]interface{}{
			"provider": dispatcher.Provider(),
			"model":    dispatcher.Model(),
		})
	}

	// 3. Event Bus
	var eventPublisher events.Publisher = events.NopPublisher{}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	var publisherService service.IPublisherService
	if cfg.MailEnabled() {
		pubSub := gochannel.NewGoChannel(
			gochannel.Config{},
			watermill.NewStdLogger(false, false),
		)
		c.closers = append(c.closers, func() { _ = pubSub.Close() })

		emailService := mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			fmt.Sprintf("%s <%s>", cfg.SMTP.SenderName, cfg.SMTP.Email),
			cfg.App.ClientURL,
		)
		publisherService = service.NewPublisherService(pubSub, service.TopicMemberInvited)
		c.ConsumerService = service.NewInvitationConsumer(pubSub, service.TopicMemberInvited, emailService, sysLogger)
	}

	// 4. Services
	evaluator := access.NewEvaluator()
	contextProvider := doccontext.NewDocumentProvider(doccontext.NewServer(uowFactory))
	answerService := answer.NewService(contextProvider, dispatcher, sysLogger)
	conversationLog := conversation.NewLog(uowFactory)

	authService := service.NewAuthService(uowFactory, issuer, sysLogger)
	organizationService := service.NewOrganizationService(uowFactory, evaluator, publisherService, eventPublisher, sysLogger)
	documentService := service.NewDocumentService(uowFactory, evaluator, answerService, conversationLog, eventPublisher, sysLogger)

	schema, err := graph.NewSchema(graph.NewResolver(authService, organizationService, documentService, sysLogger))
	if err != nil {
		return nil, fmt.Errorf("parse graphql schema: %w", err)
	}

	// 5. Controllers
	c.GraphQLController = controller.NewGraphQLController(schema, issuer)
	c.HealthController = controller.NewHealthController()

	return c, nil
}

// Close releases bus connections and flushes the logger.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
