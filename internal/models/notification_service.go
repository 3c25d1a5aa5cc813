package models

import "fmt"

type NotificationService interface {
	SendPurchaseNotification(notification *Notification)
}

// Notification carries the details of a confirmed purchase for the
// operator notice.
type Notification struct {
	Token string  `json:"token"`
	Plano string  `json:"plano"`
	Valor float64 `json:"valor"`
}

func (n *Notification) String() string {
	return fmt.Sprintf("Compra confirmada! Plano %s - R$%.2f (token %s)", n.Plano, n.Valor, n.Token)
}
