package models

// PaymentSession est éphémère : elle n'existe qu'entre la création du lien de
// paiement et la redirection du navigateur vers la passerelle.
type PaymentSession struct {
	OrderID    string  `json:"orderId"`
	Amount     float64 `json:"amount"`
	PaymentURL string  `json:"paymentUrl"`
	QRCode     string  `json:"qrCode,omitempty"` // PNG base64 du lien de paiement
}

// PaymentReturn est le résultat interprété du retour passerelle.
// C'est le seul contrat possédé par ce système ; les paramètres bruts de la
// passerelle restent opaques et sont transmis tels quels.
type PaymentReturn struct {
	Success         bool   `json:"success"`
	OrderID         string `json:"orderId"`
	Message         string `json:"message"`
	ResponseCode    string `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
	TransactionID   string `json:"transactionId,omitempty"`
}
