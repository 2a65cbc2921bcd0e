package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"lumina_back_end/internal/models"
)

// SendOrderConfirmationEmail envoie la confirmation de commande.
// Toujours appelé depuis une goroutine détachée : un échec est loggé,
// jamais remonté comme un échec de commande.
func SendOrderConfirmationEmail(to string, order models.Order, address models.Address) error {
	msg := mail.NewMsg()

	if err := msg.From("noreply@lumina.vn"); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Confirmation de votre commande Lumina #%s", order.ID.String()))
	msg.SetBodyString(mail.TypeTextHTML, GenerateOrderConfirmationHTML(order, address))

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de confirmation à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order, address models.Address) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s (%s)</td>
				<td>%d</td>
				<td>%.0f₫</td>
				<td>%.0f₫</td>
			</tr>`, item.ProductName, item.AttributesName, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	discountRow := ""
	if order.Discount > 0 {
		discountRow = fmt.Sprintf(`
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Réduction (%s):</td>
					<td style="padding: 10px;">−%.0f₫</td>
				</tr>`, order.VoucherCode, order.Discount)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande <strong>#%s</strong> a été enregistrée avec succès (paiement : %s).</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right;">Frais de port:</td>
					<td style="padding: 10px;">%.0f₫</td>
				</tr>
				%s
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%.0f₫</td>
				</tr>
			</tfoot>
		</table>

		<h3>Adresse de livraison</h3>
		<p style="color: #555;">
			%s — %s<br>
			%s, %s, %s, %s
		</p>

		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Lumina</strong>
		</p>
	</div>
</body>
</html>`, order.ID.String(), order.PaymentMethod, itemsHTML, order.ShippingFee, discountRow, order.Total,
		address.Recipient, address.Phone, address.Line, address.Ward, address.District, address.City)
}
