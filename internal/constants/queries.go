package constants

const (
	GetStatusByApiKey = `
	SELECT * FROM api_keys WHERE id = $1
	`

	ResetPaymentTable = `
	TRUNCATE TABLE payment
	`
)
