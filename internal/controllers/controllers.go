package controllers

import (
	customerController "skimmer/internal/controllers/customers"
	recurringController "skimmer/internal/controllers/recurring"
	serviceController "skimmer/internal/controllers/services"
	"skimmer/internal/repositories"
	"skimmer/internal/services"
)

type Controllers struct {
	Customer  customerController.CustomerControllerInterface
	Service   serviceController.ServiceControllerInterface
	Recurring recurringController.RecurringServiceControllerInterface
}

func New(
	repos repositories.Repository,
	transaction *services.TransactionService,
) Controllers {
	return Controllers{
		Customer:  customerController.New(repos, transaction),
		Service:   serviceController.New(repos),
		Recurring: recurringController.New(repos),
	}
}
