package server

import (
	"crypto/tls"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/negroni"
	"golang.org/x/crypto/acme/autocert"

	"github.com/autou/mailtriage/handlers"
)

type Config struct {
	Domains      []string
	CertCacheDir string
	HTTPSPort    string
}

func SetupRoutes(runner handlers.PipelineRunner, store handlers.RecordStore, mailer handlers.Mailer, logger *slog.Logger) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", handlers.Home).Methods("GET")
	r.HandleFunc("/health", handlers.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	classifyHandler := handlers.NewClassifyHandler(runner, store, logger)
	r.Handle("/api/classify", classifyHandler).Methods("POST")

	recordsHandler := handlers.NewRecordsHandler(store, logger)
	r.HandleFunc("/api/respostas", recordsHandler.List).Methods("GET")
	r.HandleFunc("/api/respostas/{id}", recordsHandler.UpdateResponse).Methods("PUT")
	r.HandleFunc("/api/respostas/{id}", recordsHandler.Delete).Methods("DELETE")

	sendHandler := handlers.NewSendHandler(store, mailer, logger)
	r.Handle("/api/send-email", sendHandler).Methods("POST")

	return r
}

func SetupNegroni(r *mux.Router) *negroni.Negroni {
	n := negroni.New()
	n.Use(negroni.NewRecovery())
	n.Use(negroni.NewLogger())
	n.UseHandler(r)
	return n
}

// ServeProduction builds the server when we operate in a production environment.
func ServeProduction(n *negroni.Negroni, cfg Config) {
	autocertManager := autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(cfg.Domains...),
		Cache:      autocert.DirCache(cfg.CertCacheDir),
	}

	// Port 80 serves ACME "http-01" challenges and redirects the rest
	// to HTTPS.
	go func() {
		srv := &http.Server{
			Addr:         ":80",
			Handler:      autocertManager.HTTPHandler(nil),
			IdleTimeout:  time.Minute,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}

		err := srv.ListenAndServe()
		log.Fatal(err)
	}()

	tlsConfig := &tls.Config{
		GetCertificate:           autocertManager.GetCertificate,
		PreferServerCipherSuites: true,
		CurvePreferences:         []tls.CurveID{tls.X25519, tls.CurveP256},
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPSPort,
		Handler:      n,
		TLSConfig:    tlsConfig,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	err := srv.ListenAndServeTLS("", "") // Key and cert provided by autocert.
	log.Fatal(err)
}

// ServeDevelopment starts the server when we operate in a dev environment.
func ServeDevelopment(s *http.Server) {
	log.Fatal(s.ListenAndServe())
}
