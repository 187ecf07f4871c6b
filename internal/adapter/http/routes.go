package http

import "net/http"

// NewRouter wires every handler onto one mux.
func NewRouter(
	auth *AuthHandler,
	boardH *BoardHandler,
	orders *OrderHandler,
	webhooks *WebhookHandler,
	exports *ExportHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", auth.Login)
	mux.HandleFunc("GET /board", boardH.View)

	mux.HandleFunc("POST /orders", orders.Create)
	mux.HandleFunc("POST /orders/simulate", orders.Simulate)
	mux.HandleFunc("POST /orders/bulk-ready", orders.BulkReady)
	mux.HandleFunc("POST /orders/{id}/advance", orders.Advance)
	mux.HandleFunc("PATCH /orders/{id}", orders.Update)
	mux.HandleFunc("DELETE /orders/{id}/items/{itemID}", orders.DeleteItem)

	mux.HandleFunc("POST /webhooks/glovo", webhooks.Glovo)
	mux.HandleFunc("POST /webhooks/partner", webhooks.Partner)

	mux.HandleFunc("GET /export/history.csv", exports.HistoryCSV)
	mux.HandleFunc("GET /report", exports.Report)
	mux.HandleFunc("GET /insights", exports.Insights)

	return mux
}
