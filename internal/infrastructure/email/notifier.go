// Package email envía la confirmación de pedidos por SMTP.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"

	"github.com/bilkro/pos-api/internal/application/checkout"
	"github.com/bilkro/pos-api/pkg/config"
	"github.com/bilkro/pos-api/pkg/logger"
)

var _ checkout.Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier implementa checkout.Notifier sobre SMTP (gomail).
// El pipeline de checkout lo invoca después del commit; un fallo aquí solo se
// refleja en el flag emailSent de la respuesta.
type SMTPNotifier struct {
	cfg  config.SMTPConfig
	tmpl *template.Template
	log  *logger.Logger
}

// NewSMTPNotifier construye el notificador. Devuelve error solo si la
// plantilla embebida no compila.
func NewSMTPNotifier(cfg config.SMTPConfig, log *logger.Logger) (*SMTPNotifier, error) {
	tmpl, err := template.New("order_confirmation").Parse(orderConfirmationHTML)
	if err != nil {
		return nil, fmt.Errorf("parse plantilla de confirmación: %w", err)
	}
	return &SMTPNotifier{cfg: cfg, tmpl: tmpl, log: log}, nil
}

type orderLineView struct {
	Name      string
	Quantity  int
	Price     string
	LineTotal string
}

type orderEmailView struct {
	CustomerName  string
	InvoiceNumber string
	TransactionID string
	Date          string
	Items         []orderLineView
	Subtotal      string
	Discount      string
	Total         string
	PaymentMethod string
}

// SendOrderConfirmation renderiza y envía el correo de confirmación.
func (n *SMTPNotifier) SendOrderConfirmation(ctx context.Context, email, customerName string, details checkout.OrderDetails) error {
	view := orderEmailView{
		CustomerName:  customerName,
		InvoiceNumber: details.InvoiceNumber,
		TransactionID: details.TransactionID,
		Date:          details.Date.Format("2006-01-02 15:04"),
		Subtotal:      details.Subtotal.StringFixed(2),
		Discount:      details.Discount.StringFixed(2),
		Total:         details.Total.StringFixed(2),
		PaymentMethod: details.PaymentMethod,
	}
	for _, line := range details.Items {
		lineTotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.Items = append(view.Items, orderLineView{
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price.StringFixed(2),
			LineTotal: lineTotal.StringFixed(2),
		})
	}

	var body bytes.Buffer
	if err := n.tmpl.Execute(&body, view); err != nil {
		return fmt.Errorf("renderizar correo de confirmación: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.cfg.From)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Confirmación de tu pedido - "+details.InvoiceNumber)
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)

	// gomail no acepta context: respetamos la cancelación enviando en una
	// goroutine y retornando apenas el ctx se cancele.
	done := make(chan error, 1)
	go func() { done <- dialer.DialAndSend(msg) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("enviar correo de confirmación: %w", err)
		}
		n.log.Info().Str("email", email).Str("invoice", details.InvoiceNumber).
			Msg("Correo de confirmación enviado")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
