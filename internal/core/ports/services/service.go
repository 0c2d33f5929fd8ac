package services

// ServiceContainer holds instances of all the application services.
// It is the main entry point for handlers.
type ServiceContainer struct {
	Wallet  WalletSvcFacade
	Auth    AuthSvc
	Session SessionSvc
	Export  ExportSvc
}
