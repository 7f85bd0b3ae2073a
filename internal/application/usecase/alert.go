package usecase

// AlertKind é o tipo visual do alerta.
type AlertKind string

const (
	AlertError   AlertKind = "error"
	AlertInfo    AlertKind = "info"
	AlertSuccess AlertKind = "success"
	AlertWarning AlertKind = "warning"
)

// DefaultTitle retorna o título usado quando o alerta não define um.
func (k AlertKind) DefaultTitle() string {
	switch k {
	case AlertError:
		return "Error"
	case AlertSuccess:
		return "Success"
	case AlertWarning:
		return "Warning"
	default:
		return "Information"
	}
}

// Alert é o banner exibido após uma ação. Nunca é fatal.
type Alert struct {
	Kind    AlertKind
	Title   string
	Message string
}

// NewAlert cria um alerta com o título padrão do tipo.
func NewAlert(kind AlertKind, message string) Alert {
	return Alert{Kind: kind, Title: kind.DefaultTitle(), Message: message}
}

// alerts guarda o alerta atual de uma seção.
type alerts struct {
	current *Alert
}

// Alert retorna o alerta atual, ou nil.
func (a *alerts) Alert() *Alert {
	return a.current
}

// DismissAlert fecha o alerta atual.
func (a *alerts) DismissAlert() {
	a.current = nil
}

func (a *alerts) show(kind AlertKind, message string) {
	alert := NewAlert(kind, message)
	a.current = &alert
}
