package handlers

// AppHandlers groups all HTTP handlers for route registration.
type AppHandlers struct {
	NotificationHandler *NotificationHandler
	ModalHandler        *ModalHandler
	SessionHandler      *SessionHandler
}
