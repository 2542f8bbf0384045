package handlers

import (
	"net/http"

	"ecotracker-backend/internal/services"
	"ecotracker-backend/pkg/utils"
)

// SendTestNotification pushes a fixed message to every registered device so
// the household can verify delivery end to end.
func SendTestNotification(notifier services.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if notifier == nil || !notifier.HasPermission() {
			utils.Error(w, http.StatusForbidden, "Nessun dispositivo registrato per le notifiche")
			return
		}

		err := notifier.Send("♻️ Notifica di prova", "Le notifiche funzionano correttamente!")
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to send test notification")
			return
		}
		utils.Message(w, http.StatusOK, "Notifica inviata")
	}
}
