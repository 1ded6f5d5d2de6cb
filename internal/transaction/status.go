package transaction

// MapGatewayStatus folds a Midtrans (transaction_status, fraud_status) pair
// into the local payment status.
//
// A capture with fraud_status=challenge stays pending: the gateway sends a
// follow-up notification once fraud review resolves, so adding a second
// local writer for it would race the webhook path.
func MapGatewayStatus(transactionStatus, fraudStatus string) PaymentStatus {
	switch transactionStatus {
	case "settlement":
		return StatusPaid
	case "capture":
		if fraudStatus == "accept" {
			return StatusPaid
		}
		return StatusPending
	case "cancel", "deny":
		return StatusFailed
	case "expire":
		return StatusExpired
	}
	return StatusPending
}
