package api

import "github.com/gorilla/rpc"

type ServiceContainer struct {
	WalletService *WalletService
	AdminService  *AdminService
}

func (s *ServiceContainer) RegisterServices(server *rpc.Server) {
	server.RegisterService(s.WalletService, "")
	server.RegisterService(s.AdminService, "")
}
