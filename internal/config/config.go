package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	App struct {
		// BaseURL is the public origin used to build the validation links
		// embedded in client emails.
		BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`
	} `envPrefix:"APP_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	InitialAdmin struct {
		Email      string `env:"EMAIL,required"`
		Password   string `env:"PASSWORD,required"`
		FirstName  string `env:"FIRST_NAME" envDefault:"Admin"`
		LastName   string `env:"LAST_NAME" envDefault:"Agence"`
		AgencyName string `env:"AGENCY_NAME" envDefault:"PLURI'RH"`
	} `envPrefix:"INITIAL_ADMIN_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"1209600"` // 14 jours
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	ValidationToken struct {
		Expiration int `env:"EXPIRATION" envDefault:"604800"` // 7 jours
	} `envPrefix:"VALIDATION_TOKEN_"`
	Webhook struct {
		SubmissionURL   string `env:"SUBMISSION_URL"`
		ValidationURL   string `env:"VALIDATION_URL"`
		ConsultationURL string `env:"CONSULTATION_URL"`
		RequestTimeout  int    `env:"REQUEST_TIMEOUT" envDefault:"5"`
	} `envPrefix:"WEBHOOK_"`
	Seed struct {
		User struct {
			Password string `env:"PASSWORD,required"`
		} `envPrefix:"USER_"`
	} `envPrefix:"SEED_"`
	Email struct {
		From string `env:"FROM,required"`
		SMTP struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host                string `env:"HOST" envDefault:"localhost"`
		Port                int    `env:"PORT" envDefault:"6379"`
		Password            string `env:"PASSWORD,required"`
		ConnectTimeout      int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		OperationExpiration int    `env:"OPERATION_EXPIRATION" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	OTP struct {
		Expiration int `env:"EXPIRATION" envDefault:"900"` // 15 minutes
	} `envPrefix:"OTP_"`
	NewUser struct {
		PasswordLength int `env:"PASSWORD_LENGTH" envDefault:"12"`
	} `envPrefix:"NEW_USER_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// only return the first error to keep the log readable
			return nil, aggErr.Errors[0]
		}
	}

	return cfg, nil
}
