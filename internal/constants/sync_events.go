package constants

// Bubble object type names as exposed by the Data API
const (
	ObjectTypePayment          = "payment"
	ObjectTypeInvoice          = "invoice"
	ObjectTypeInvoiceItem      = "invoiceitem"
	ObjectTypeCustomer         = "customer"
	ObjectTypeAgent            = "agent"
	ObjectTypeSEDARegistration = "sedaregistration"
)

// Job names for progress sessions and metrics labels
const (
	JobPaymentSync     = "payment_sync"
	JobRecordMigration = "record_migration"
	JobEPPBackfill     = "epp_backfill"
	JobInvoiceRecalc   = "invoice_recalc"
)
