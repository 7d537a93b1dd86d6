package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/pluri-rh/timesheet-manager/backend/internal/config"
	"github.com/pluri-rh/timesheet-manager/backend/internal/domain"
)

// mailKinds routes a queue message type to its template and subject.
var mailKinds = map[string]struct {
	TemplatePath string
	Subject      string
}{
	"timesheet_submitted": {
		TemplatePath: "./templates/timesheet_submitted_email.html",
		Subject:      "PLURI'RH - Relevé d'heures à valider",
	},
	"timesheet_decision": {
		TemplatePath: "./templates/timesheet_decision_email.html",
		Subject:      "PLURI'RH - Décision sur un relevé d'heures",
	},
	"reset_password": {
		TemplatePath: "./templates/reset_password_otp_email.html",
		Subject:      "PLURI'RH - Réinitialisation du mot de passe",
	},
	"invitation": {
		TemplatePath: "./templates/invitation_email.html",
		Subject:      "PLURI'RH - Votre compte intérimaire",
	},
}

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("impossible de charger la configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * client SMTP
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("impossible de créer le client SMTP", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("impossible de joindre le serveur SMTP", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("impossible de se connecter à rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("impossible d'ouvrir un canal rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"email_queue",
		true,  // durable
		false, // no auto-delete, the queue must survive idle periods
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("impossible de déclarer la file email", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // manual ack so a failed send can be requeued
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("impossible de consommer la file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("message reçu", slog.String("message", string(msg.Body)))

				mailMessage := domain.MailMessage{}
				if err := json.Unmarshal(msg.Body, &mailMessage); err != nil {
					logger.Error("désérialisation du message échouée", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				kind, ok := mailKinds[mailMessage.Type]
				if !ok {
					logger.Error("type de message non pris en charge", slog.String("type", mailMessage.Type))
					_ = msg.Nack(false, false)
					continue
				}

				m := mail.NewMsg()
				if err := m.From(cfg.Email.From); err != nil {
					logger.Error("impossible de définir l'expéditeur", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(mailMessage.To); err != nil {
					logger.Error("impossible de définir le destinataire", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				tmpl, err := template.ParseFiles(kind.TemplatePath)
				if err != nil {
					logger.Error("impossible de charger le modèle d'email", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
					logger.Error("impossible de composer le corps de l'email", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				m.Subject(kind.Subject)

				if err := client.DialAndSend(m); err != nil {
					logger.Error("envoi de l'email échoué", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // requeue for another attempt
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("en attente de messages... (CTRL+C pour quitter)")
	<-sigChan

	slog.Info("arrêt du mail worker...")
	cancel()
	wg.Wait()
	slog.Info("mail worker arrêté")
}
