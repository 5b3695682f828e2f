package controllers

import (
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/internal/validation"

	authController "gearguard/internal/controllers/auth"
	equipmentController "gearguard/internal/controllers/equipment"
	maintenanceRequestController "gearguard/internal/controllers/maintenanceRequests"
	notificationController "gearguard/internal/controllers/notifications"
	teamController "gearguard/internal/controllers/teams"
	userController "gearguard/internal/controllers/users"
)

type Controllers struct {
	Auth               authController.AuthControllerInterface
	Team               teamController.TeamControllerInterface
	User               userController.UserControllerInterface
	Equipment          equipmentController.EquipmentControllerInterface
	MaintenanceRequest maintenanceRequestController.MaintenanceRequestControllerInterface
	Notification       notificationController.NotificationControllerInterface
}

func New(services services.Service, repos repositories.Repository) Controllers {
	validator := validation.New()
	transaction := services.Transaction

	return Controllers{
		Auth:      authController.New(repos, transaction, services.Auth, validator),
		Team:      teamController.New(repos, transaction, validator),
		User:      userController.New(repos, transaction, services.Auth, validator),
		Equipment: equipmentController.New(repos, transaction, validator),
		MaintenanceRequest: maintenanceRequestController.New(
			repos,
			transaction,
			services.BoardCache,
			validator,
		),
		Notification: notificationController.New(repos, transaction, validator),
	}
}
