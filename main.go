package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/apexsim/storefront-backend/config"
	"github.com/apexsim/storefront-backend/controllers"
	"github.com/apexsim/storefront-backend/database"
	"github.com/apexsim/storefront-backend/gateway"
	"github.com/apexsim/storefront-backend/kafka"
	"github.com/apexsim/storefront-backend/logger"
	"github.com/apexsim/storefront-backend/middleware"
	awspkg "github.com/apexsim/storefront-backend/pkg/aws"
	"github.com/apexsim/storefront-backend/repository"
	"github.com/apexsim/storefront-backend/routes"
	"github.com/apexsim/storefront-backend/services"
)

const cartTTL = 7 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("[Storefront] Failed to load config: ", err)
	}

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatal("[Storefront] Failed to initialize logger: ", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	mongo, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		zlog.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongo.Close()

	if err := mongo.EnsureIndexes(ctx); err != nil {
		zlog.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		zlog.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Repositories
	logRepo := repository.NewTransactionLogRepository(mongo.DB)
	orderRepo := repository.NewOrderRepository(mongo.Client, mongo.DB)
	userRepo := repository.NewUserRepository(mongo.DB)
	productRepo := repository.NewProductRepository(mongo.DB)
	cartRepo := repository.NewCartRepository(redisClient, cartTTL)

	// Payment gateway + webhook processor
	gw := gateway.NewBraintreeGateway(
		cfg.BraintreeEnvironment,
		cfg.BraintreeMerchantID,
		cfg.BraintreePublicKey,
		cfg.BraintreePrivateKey,
		zlog,
	)
	stripeSvc := services.NewStripeService(cfg.StripeWebhookSecret)

	// Event fan-out: Kafka and SNS are both optional and best-effort.
	var producer kafka.ProducerAPI
	if cfg.KafkaBrokers != "" {
		kafkaProducer := kafka.NewOrderEventProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.OrderEventsTopic, zlog)
		defer kafkaProducer.Close()
		producer = kafkaProducer
	}

	var snsClient awspkg.SNSPublisher
	if cfg.OrderSNSTopicARN != "" {
		if awsCfg, err := awspkg.LoadAWSConfig(ctx); err == nil {
			snsClient = awspkg.NewSNSClient(awsCfg)
		} else {
			zlog.Warn("SNS disabled, AWS config unavailable", zap.Error(err))
		}
	}
	events := services.NewEventPublisher(producer, snsClient, cfg.OrderSNSTopicARN, zlog)

	// Services
	txlog := services.NewTransactionLogger(logRepo, zlog)
	checkoutSvc := services.NewCheckoutService(gw, orderRepo, cartRepo, txlog, events, zlog)
	aggregationSvc := services.NewAggregationService(logRepo, zlog)
	orderAdminSvc := services.NewOrderAdminService(orderRepo, events, zlog)

	auth := middleware.NewAuth(userRepo, cfg.JWTSecret, zlog)

	metricsClient, err := awspkg.NewMetricsClient(ctx)
	if err != nil {
		zlog.Warn("CloudWatch metrics disabled", zap.Error(err))
		metricsClient = nil
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(zlog))
	r.Use(middleware.MetricsMiddleware(metricsClient, "storefront-backend"))

	routes.Register(r, &routes.Controllers{
		Checkout: &controllers.CheckoutController{
			Checkout: checkoutSvc,
			Gateway:  gw,
			TxLog:    txlog,
			Metrics:  metricsClient,
			Env:      cfg.Environment,
			Logger:   zlog,
		},
		Webhook: &controllers.WebhookController{
			Stripe:  stripeSvc,
			Orders:  orderRepo,
			TxLog:   txlog,
			Events:  events,
			Metrics: metricsClient,
			Logger:  zlog,
		},
		Admin: &controllers.AdminController{
			Aggregation: aggregationSvc,
			OrderAdmin:  orderAdminSvc,
			LogRepo:     logRepo,
			Env:         cfg.Environment,
			Logger:      zlog,
		},
		Products: &controllers.ProductController{
			Products: productRepo,
			Env:      cfg.Environment,
			Logger:   zlog,
		},
		Cart: &controllers.CartController{
			Carts:  cartRepo,
			Env:    cfg.Environment,
			Logger: zlog,
		},
		Auth: auth,
	})

	zlog.Info("Storefront backend running", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("Server failed", zap.Error(err))
	}
}
