package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/JohnClaps/heslgbmw-ltrs/internal/adapter/gateway/paychangu"
	httpadp "github.com/JohnClaps/heslgbmw-ltrs/internal/adapter/http"
	mw "github.com/JohnClaps/heslgbmw-ltrs/internal/adapter/middleware"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/adapter/repository/mysql"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/config"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/domain/user"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/infrastructure/cache"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/infrastructure/db"
	approvalUC "github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/approval"
	authUC "github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/auth"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/checkout"
	loanUC "github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/loan"
	paymentUC "github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/payment"
	statsUC "github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/stats"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	loanRepo := mysql.NewLoanRepository(gdb)
	userRepo := mysql.NewUserRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	tokens := authUC.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := authUC.NewUsecase(userRepo, tokens)
	loans := loanUC.NewUsecase(loanRepo, userRepo)
	approvals := approvalUC.NewUsecase(uow)
	payments := paymentUC.NewUsecase(uow)
	stats := statsUC.NewUsecase(loanRepo)

	gw := paychangu.New(cfg.PayChanguBaseURL, cfg.PayChanguSecretKey)
	checkoutSvc := checkout.NewService(gw, payments)

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(authSvc)
	loanH := httpadp.NewLoanHandler(loans, approvals)
	payH := httpadp.NewPaymentHandler(loans, checkoutSvc)
	statsH := httpadp.NewStatsHandler(stats)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)
	e.POST("/auth/login", authH.Login)
	e.POST("/auth/register", authH.Register)
	e.GET("/banks", payH.Banks)

	authed := e.Group("", mw.JWTAuth(authSvc))
	authed.GET("/me", authH.Me)
	authed.GET("/me/stats", statsH.MyStats)
	authed.GET("/loans", loanH.ListMyLoans)
	authed.POST("/loans", loanH.CreateLoan)
	authed.GET("/loans/:loan_id", loanH.GetLoan)

	idemTTL := time.Duration(cfg.IdempTTLSecs) * time.Second
	authed.POST("/loans/:loan_id/payments", payH.Pay, mw.Idempotency(rdb, idemTTL))

	admin := authed.Group("/admin", mw.RequireRole(user.RoleAdmin))
	admin.GET("/loans", loanH.ListAllLoans)
	admin.GET("/stats", statsH.PortfolioStats)
	admin.POST("/loans/:loan_id/approve", loanH.ApproveLoan)
	admin.POST("/loans/:loan_id/reject", loanH.RejectLoan)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
