package main

import (
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/yonfy/pagomedios-go/internal/handler"
	"github.com/yonfy/pagomedios-go/pagomedios"
)

func main() {
	// Local runs keep credentials in a .env file; on Lambda the file
	// is absent and the environment is already populated.
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "pagomedios-lambda").Logger()

	client, err := pagomedios.New(pagomedios.Config{
		BaseURL: os.Getenv("PAGOMEDIOS_BASE_URL"),
		Token:   os.Getenv("PAGOMEDIOS_TOKEN"),
		Logger:  &log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure pagomedios client")
	}

	opts := []handler.Option{handler.WithLogger(log)}

	if callbackURL := strings.TrimSpace(os.Getenv("PAYMENT_CALLBACK_URL")); callbackURL != "" {
		sender, err := handler.NewHTTPSCallbackSender(callbackURL, os.Getenv("PAYMENT_CALLBACK_SECRET"), nil)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure callback sender")
		}
		opts = append(opts, handler.WithCallbackSender(sender))
	}

	if interval, err := time.ParseDuration(os.Getenv("PAYMENT_POLL_INTERVAL")); err == nil {
		opts = append(opts, handler.WithPollInterval(interval))
	}
	if timeout, err := time.ParseDuration(os.Getenv("PAYMENT_POLL_TIMEOUT")); err == nil {
		opts = append(opts, handler.WithTimeout(timeout))
	}

	processor := handler.NewProcessor(client, opts...)

	lambda.Start(processor.Handle)
}
