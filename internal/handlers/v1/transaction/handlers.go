package transaction

import "github.com/danielgtaylor/huma/v2"

// TransactionService is everything the transaction endpoints need.
type TransactionService interface {
	transactionLister
	trashLister
	transactionCreator
	transactionUpdater
	transactionSoftDeleter
	transactionRestorer
	transactionPurger
	transactionSummarizer
}

// RegisterAll registers every transaction and trash endpoint.
func RegisterAll(api huma.API, svc TransactionService) {
	NewListTransactionsHandler(svc).Register(api)
	NewSummaryHandler(svc).Register(api)
	NewListTrashHandler(svc).Register(api)
	NewCreateTransactionHandler(svc).Register(api)
	NewUpdateTransactionHandler(svc).Register(api)
	NewDeleteTransactionHandler(svc).Register(api)
	NewRestoreTransactionHandler(svc).Register(api)
	NewPurgeTransactionHandler(svc).Register(api)
}
