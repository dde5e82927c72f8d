package main

import (
	"log"

	"ordermanager/internal/config"
	"ordermanager/internal/domain/model"
	"ordermanager/internal/handler"
	"ordermanager/internal/infra/db"
	"ordermanager/internal/infra/events"
	"ordermanager/internal/infra/memory"
	infraRepo "ordermanager/internal/infra/repository"
	"ordermanager/internal/repository"
	"ordermanager/internal/server"
	"ordermanager/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// バックエンドごとに組み立てたリポジトリ一式
type repos struct {
	products  repository.ProductRepository
	customers repository.CustomerRepository
	tx        repository.TransactionManager
}

func buildRepos(cfg config.Config) (repos, error) {
	if cfg.StorageBackend == config.BackendMemory {
		store := memory.NewStore()
		return repos{
			products:  memory.NewProductMemoryRepository(store),
			customers: memory.NewCustomerMemoryRepository(store),
			tx:        memory.NewTxManagerMemory(store),
		}, nil
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		return repos{}, err
	}
	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.Customer{},
		&model.Order{},
		&model.OrderItem{},
		&model.InventoryAdjustment{},
	); err != nil {
		return repos{}, err
	}
	return repos{
		products:  infraRepo.NewProductGormRepository(gormDB),
		customers: infraRepo.NewCustomerGormRepository(gormDB),
		tx:        infraRepo.NewTxManagerGorm(gormDB),
	}, nil
}

func main() {
	//.envはあれば読む
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var logger *zap.Logger
	if cfg.GoEnv == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	r, err := buildRepos(cfg)
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}
	logger.Info("storage ready", zap.String("backend", cfg.StorageBackend))

	//Kafka未設定なら配信しない
	var publisher usecase.OrderEventPublisher = events.NewNoopPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer kp.Close()
		publisher = kp
		logger.Info("kafka publisher ready",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic))
	}

	//Usecase生成
	productUC := usecase.NewProductUsecase(r.products, logger)
	customerUC := usecase.NewCustomerUsecase(r.customers, logger)
	inventoryUC := usecase.NewInventoryUsecase(r.tx, logger)
	orderUC := usecase.NewOrderUsecase(r.tx, publisher, logger)

	//Handler生成
	h := server.Handlers{
		Products:  handler.NewProductHandler(productUC),
		Customers: handler.NewCustomerHandler(customerUC),
		Orders:    handler.NewOrderHandler(orderUC),
		Inventory: handler.NewInventoryHandler(inventoryUC),
	}

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}
	if err := server.Start(addr, h, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
