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
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jinzhu/copier"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"

	"github.com/tendant/backoffice-idm/pkg/account"
	accountapi "github.com/tendant/backoffice-idm/pkg/account/api"
	"github.com/tendant/backoffice-idm/pkg/audit"
	"github.com/tendant/backoffice-idm/pkg/authcore"
	authapi "github.com/tendant/backoffice-idm/pkg/authcore/api"
	"github.com/tendant/backoffice-idm/pkg/notice"
	"github.com/tendant/backoffice-idm/pkg/notification"
	"github.com/tendant/backoffice-idm/pkg/password"
	"github.com/tendant/backoffice-idm/pkg/profile"
	"github.com/tendant/backoffice-idm/pkg/ratelimit"
	"github.com/tendant/backoffice-idm/pkg/role"
	"github.com/tendant/backoffice-idm/pkg/tokengenerator"
	"github.com/tendant/backoffice-idm/pkg/verification"
)

type BackofficeDbConfig struct {
	Host     string `env:"BACKOFFICE_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"BACKOFFICE_PG_PORT" env-default:"5432"`
	Database string `env:"BACKOFFICE_PG_DATABASE" env-default:"backoffice_db"`
	User     string `env:"BACKOFFICE_PG_USER" env-default:"backoffice"`
	Password string `env:"BACKOFFICE_PG_PASSWORD" env-default:"pwd"`
}

func (d BackofficeDbConfig) toDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

type JwtConfig struct {
	JwtSecret string        `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	Issuer    string        `env:"JWT_ISSUER" env-default:"backoffice-idm"`
	Audience  string        `env:"JWT_AUDIENCE" env-default:"backoffice"`
	Expiry    time.Duration `env:"JWT_EXPIRY" env-default:"30m"`
}

type SmtpConfig struct {
	Host     string `env:"SMTP_HOST" env-default:"localhost"`
	Port     int    `env:"SMTP_PORT" env-default:"1025"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" env-default:"noreply@example.com"`
	TLS      bool   `env:"SMTP_TLS" env-default:"false"`
}

type PasswordComplexityConfig struct {
	MinLength          int  `env:"PASSWORD_COMPLEXITY_REQUIRED_LENGTH" env-default:"8"`
	RequireUppercase   bool `env:"PASSWORD_COMPLEXITY_REQUIRE_UPPERCASE" env-default:"true"`
	RequireLowercase   bool `env:"PASSWORD_COMPLEXITY_REQUIRE_LOWERCASE" env-default:"true"`
	RequireDigit       bool `env:"PASSWORD_COMPLEXITY_REQUIRE_DIGIT" env-default:"true"`
	RequireSpecialChar bool `env:"PASSWORD_COMPLEXITY_REQUIRE_SPECIAL_CHAR" env-default:"true"`
}

type Config struct {
	DbConfig                 BackofficeDbConfig
	AppConfig                app.AppConfig
	JwtConfig                JwtConfig
	SmtpConfig               SmtpConfig
	PasswordComplexityConfig PasswordComplexityConfig
	DefaultProfileID         int64 `env:"SIGNUP_DEFAULT_PROFILE_ID" env-default:"2"`
}

func main() {
	config := Config{}
	cleanenv.ReadEnv(&config)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	dbConfig := config.DbConfig.toDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(-1)
	}

	auditSink := audit.NewPostgresSink(pool)

	profileRepo := profile.NewPostgresRepository(pool)
	if _, err := profileRepo.GetByID(context.Background(), config.DefaultProfileID); err != nil {
		slog.Warn("Default signup profile not found, signups will fail until it exists",
			"profile_id", config.DefaultProfileID, "err", err)
	}

	accountRepo := account.NewPostgresRepository(pool)
	accountService := account.NewService(accountRepo, account.WithAuditSink(auditSink))
	roleService := role.NewService(role.NewPostgresRepository(pool), role.WithAuditSink(auditSink))

	codeCache := verification.NewCache()
	codeCache.Start()
	defer codeCache.Stop()

	tokenService := tokengenerator.NewJwtTokenGenerator(
		config.JwtConfig.JwtSecret,
		config.JwtConfig.Issuer,
		config.JwtConfig.Audience,
		tokengenerator.WithExpiry(config.JwtConfig.Expiry),
	)

	var smtpConfig notification.SMTPConfig
	copier.Copy(&smtpConfig, &config.SmtpConfig)
	notificationManager, err := notice.NewNotificationManager(smtpConfig)
	if err != nil {
		slog.Error("Failed creating notification manager", "err", err)
		os.Exit(-1)
	}

	policy := password.DefaultPolicy()
	copier.Copy(policy, &config.PasswordComplexityConfig)

	authService := authcore.NewService(
		accountRepo,
		roleService,
		codeCache,
		tokenService,
		notice.NewAuthNotifier(notificationManager),
		authcore.WithPasswordPolicy(policy),
		authcore.WithAuditSink(auditSink),
		authcore.WithDefaultProfileID(config.DefaultProfileID),
	)

	// Brute-force slowdown on the credential endpoints
	limitConfig := ratelimit.DefaultConfig()
	limitConfig.EndpointLimits["POST /auth/login"] = ratelimit.EndpointLimit{Capacity: 10, RefillRate: 10.0 / 60.0}
	limitConfig.EndpointLimits["POST /auth/reset-password"] = ratelimit.EndpointLimit{Capacity: 5, RefillRate: 5.0 / 60.0}
	server.R.Use(ratelimit.NewMiddleware(limitConfig).Handler)

	server.R.Route("/auth", authapi.NewHandler(authService).Routes)

	tokenAuth := jwtauth.New("HS256", []byte(config.JwtConfig.JwtSecret), nil)

	server.R.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(tokenAuth))
		r.Use(jwtauth.Authenticator(tokenAuth))
		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			email, _ := claims["sub"].(string)

			acct, err := accountRepo.FindByEmail(r.Context(), email)
			if err != nil {
				slog.Error("Failed getting account", "err", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			authorities := []string{authcore.DefaultAuthority}
			if acct.ProfileID != nil {
				authorities, err = roleService.AuthoritiesForProfile(r.Context(), *acct.ProfileID)
				if err != nil {
					slog.Error("Failed resolving authorities", "err", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
			}

			render.JSON(w, r, authcore.AuthenticatedPrincipal{
				Email:       acct.Email,
				Authorities: authorities,
			})
		})

		r.Get("/roles", func(w http.ResponseWriter, r *http.Request) {
			roles, err := roleService.FindRoles(r.Context())
			if err != nil {
				slog.Error("Failed listing roles", "err", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			render.JSON(w, r, roles)
		})

		r.Route("/account", accountapi.NewHandler(accountService).Routes)
	})

	server.Run()
}
