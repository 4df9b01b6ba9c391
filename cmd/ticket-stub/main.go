package main

import (
	"fmt"

	"paysim/internal/tickets/handler"
	"paysim/internal/tickets/repository"
	"paysim/internal/tickets/service"
	"paysim/internal/tickets/validator"
	"paysim/pkg/app"
	"paysim/pkg/config"
	"paysim/pkg/logger"
	"paysim/pkg/token"
)

const (
	ServiceName    = "ticket-stub"
	GatewaySubject = "suspaygateway"
)

func main() {
	cfg := config.LoadStub(ServiceName)
	secret := []byte(cfg.SigningSecret)

	cfg.Log.Info("Starting ticketing stub")
	repo := repository.NewMemoryTicketRepository()
	ticketService := service.NewTicketService(repo, cfg.Log)
	ticketHandler := handler.NewTicketHandler(ticketService, validator.NewTicketValidator(cfg.Log), secret, cfg.Log)
	if cfg.FailStatus != 0 {
		ticketHandler.FailWith(cfg.FailStatus)
		cfg.Log.Warn("Failure injection enabled", "status", cfg.FailStatus)
	}

	serviceToken, err := token.MintServiceToken(secret, GatewaySubject, cfg.TokenTTL)
	if err != nil {
		cfg.Log.Fatal("Failed to mint service token", logger.Err(err))
	}
	fmt.Printf("%s=%s\n", config.EnvServiceToken, serviceToken)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(ticketHandler, handler.NewHealthHandler(repo, cfg.Log))
	serverApp.Run()
}
