package api

import (
	"bufio"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/AlexZinkM/ton-gamefi/internal/handler"
)

// Handlers groups everything the router serves
type Handlers struct {
	Wallet *handler.WalletHandler
	Shop   *handler.ShopHandler
	Status *handler.StatusHandler
}

// SetupRouter sets up router with handlers
func SetupRouter(h Handlers, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(requestLogger(logger))

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/wallet", func(r chi.Router) {
		r.Get("/session", h.Wallet.Session)
		r.Post("/connect", h.Wallet.Connect)
		r.Post("/restore", h.Wallet.Restore)
		r.Post("/disconnect", h.Wallet.Disconnect)
		r.Post("/pay", h.Wallet.Pay)
		r.Post("/nft/transfer", h.Wallet.TransferNft)
	})

	r.Route("/nft", func(r chi.Router) {
		r.Get("/item/{address}", h.Wallet.NftItem)
		r.Get("/collection/{address}", h.Wallet.NftCollection)
		r.Get("/collection/{address}/items/{index}", h.Wallet.NftAddressByIndex)
	})

	r.Get("/balance", h.Shop.Balance)
	r.Post("/balance/show", h.Shop.ShowBalance)
	r.Post("/balance/hide", h.Shop.HideBalance)

	r.Route("/shop", func(r chi.Router) {
		r.Get("/", h.Shop.Shop)
		r.Post("/open", h.Shop.OpenShop)
		r.Post("/close", h.Shop.CloseShop)
		r.Post("/buy", h.Shop.Buy)
		r.Post("/equip", h.Shop.Equip)
	})

	r.Post("/game/played", h.Shop.Played)
	r.Get("/ws/status", h.Status.Stream)

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Unwrap lets http.ResponseController reach the hijacker for WebSocket upgrades
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *statusRecorder) Hijack() (c net.Conn, rw *bufio.ReadWriter, err error) {
	return http.NewResponseController(r.ResponseWriter).Hijack()
}

// requestLogger tags every request with an id and logs it when done
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			logger.Info("request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("took", time.Since(start)),
			)
		})
	}
}
