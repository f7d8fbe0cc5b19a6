package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/lacultural/enrollments-api/internal/config"
)

type Service struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(conf *config.SMTPConfig) *Service {
	return &Service{
		dialer: gomail.NewDialer(conf.Host, conf.Port, conf.Username, conf.Password),
		from:   conf.From,
	}
}

func (s *Service) SendEnrollmentConfirmation(to, fullname, courseTitle string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", s.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", fmt.Sprintf("Inscripción confirmada: %v", courseTitle))
	message.SetBody("text/html", fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
			<h2 style="color: #333; text-align: center;">Inscripción confirmada</h2>
			<p>Hola %v,</p>
			<p>Tu inscripción al curso <strong>%v</strong> se ha registrado correctamente.</p>
			<p>Si no has realizado esta inscripción, responde a este correo.</p>
		</div>
	`, fullname, courseTitle))

	return s.dialer.DialAndSend(message)
}
