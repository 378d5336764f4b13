// Package main runs the Web Menu two-factor verification service.
//
// Protected routes sit behind three middlewares: bearer-token verification,
// principal resolution, and the two-factor guard. With PERSISTENCE_TYPE set
// to "inmem" (the default) the service runs without a database and seeds a
// few demo principals; set it to "postgres" for shared storage.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jinzhu/copier"
	"github.com/pquerna/otp/totp"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"

	"github.com/webmenu/webmenu-auth/pkg/authn"
	"github.com/webmenu/webmenu-auth/pkg/codestore"
	"github.com/webmenu/webmenu-auth/pkg/config"
	"github.com/webmenu/webmenu-auth/pkg/notification"
	"github.com/webmenu/webmenu-auth/pkg/twofa"
)

type Config struct {
	AppConfig       app.AppConfig
	DatabaseConfig  config.DatabaseConfig
	EmailConfig     config.EmailConfig
	TwoFactorConfig config.TwoFactorConfig
	JwtConfig       config.JwtConfig
	PersistenceType string `env:"PERSISTENCE_TYPE" env-default:"inmem"`
}

func main() {
	cfg := Config{}
	cleanenv.ReadEnv(&cfg)

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	notificationManager, err := notification.NewNotificationManagerWithOptions(
		notification.WithSMTP(cfg.EmailConfig.ToSMTPConfig()),
		notification.WithDefaultTemplates(),
	)
	if err != nil {
		slog.Error("Failed to initialize notification manager", "err", err)
		os.Exit(-1)
	}

	codes, enrollments, directory := buildRepositories(cfg)

	emailStrategy := twofa.NewEmailCodeStrategy(codes, notificationManager,
		twofa.WithCodeTTL(cfg.TwoFactorConfig.EmailCodeTTL),
	)
	totpStrategy := twofa.NewTotpStrategy(enrollments,
		twofa.WithTotpPeriod(cfg.TwoFactorConfig.TotpPeriod),
		twofa.WithTotpSkew(cfg.TwoFactorConfig.TotpSkew),
	)
	guard := twofa.NewGuard(twofa.NewRouter(emailStrategy, totpStrategy))

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JwtConfig.JwtSecret), nil)

	server.R.Group(func(r chi.Router) {
		r.Use(authn.Verifier(tokenAuth))
		r.Use(jwtauth.Authenticator(tokenAuth))
		r.Use(authn.PrincipalMiddleware(directory))

		r.Get("/me", handleMe)

		r.Group(func(r chi.Router) {
			r.Use(twofa.RequireTwoFactor(guard))
			r.Get("/api/profile", handleMe)
			r.Post("/api/companies/{companyID}/publish", handlePublish)
		})
	})

	server.Run()
}

func buildRepositories(cfg Config) (codestore.CodeStore, twofa.EnrollmentRepository, twofa.PrincipalDirectory) {
	switch cfg.PersistenceType {
	case "postgres", "postgresql":
		pool, err := dbutils.NewDbPool(context.Background(), cfg.DatabaseConfig.ToDbConfig())
		if err != nil {
			slog.Error("Failed creating dbpool",
				"db", cfg.DatabaseConfig.Database,
				"host", cfg.DatabaseConfig.Host,
				"port", cfg.DatabaseConfig.Port,
				"user", cfg.DatabaseConfig.User)
			os.Exit(-1)
		}
		return codestore.NewPostgresCodeStore(pool),
			twofa.NewPostgresEnrollmentRepository(pool),
			twofa.NewPostgresPrincipalDirectory(pool)
	default:
		slog.Info("Running with in-memory repositories (no database required)")
		enrollments := twofa.NewInMemoryEnrollmentRepository()
		directory := twofa.NewInMemoryPrincipalDirectory()
		seedDemoPrincipals(directory, enrollments)
		return codestore.NewInMemoryCodeStore(), enrollments, directory
	}
}

// seedDemoPrincipals registers one principal per mechanism so the protected
// routes can be exercised right after startup.
func seedDemoPrincipals(directory *twofa.InMemoryPrincipalDirectory, enrollments *twofa.InMemoryEnrollmentRepository) {
	plain := twofa.Principal{
		ID:        uuid.MustParse("0a6b4c6e-2f83-4f35-9f6e-6a41a1f6f3c1"),
		Email:     "plain@example.com",
		Mechanism: twofa.MechanismDisabled,
	}
	mailed := twofa.Principal{
		ID:        uuid.MustParse("3f2b1d0a-94d5-4b7e-8a11-2a6f0d3c9b42"),
		Email:     "mailed@example.com",
		Mechanism: twofa.MechanismEmail,
	}
	authenticator := twofa.Principal{
		ID:        uuid.MustParse("c7de18a4-5b3a-4f09-9a92-8a2f64c01d73"),
		Email:     "authenticator@example.com",
		Mechanism: twofa.MechanismTotp,
	}

	directory.AddPrincipal(plain)
	directory.AddPrincipal(mailed)
	directory.AddPrincipal(authenticator)

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "webmenu-auth",
		AccountName: authenticator.Email,
	})
	if err != nil {
		slog.Error("Failed to generate demo totp secret", "err", err)
		return
	}
	enrollments.AddEnrollment(authenticator.ID, key.Secret(), true, time.Now().UTC())

	slog.Info("Seeded demo principals",
		"disabled", plain.ID,
		"email", mailed.ID,
		"totp", authenticator.ID)
	slog.Info("Demo authenticator secret (register in your app)", "secret", key.Secret())
}

type ProfileResponse struct {
	ID        uuid.UUID       `json:"id"`
	Email     string          `json:"email"`
	Mechanism twofa.Mechanism `json:"mechanism"`
}

func handleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := twofa.PrincipalFromContext(r.Context())
	if !ok {
		slog.Error("Failed getting principal from context")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var resp ProfileResponse
	copier.Copy(&resp, &principal)
	render.JSON(w, r, resp)
}

// handlePublish is a stand-in for a protected business mutation; the record
// CRUD itself is owned by the main Web Menu application.
func handlePublish(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	slog.Info("Publish accepted after two-factor verification", "companyId", companyID)
	render.JSON(w, r, map[string]string{
		"result":     "published",
		"company_id": companyID,
	})
}
