package lead

// ContactInput for POST /contact
type ContactInput struct {
	Body struct {
		Name    string `json:"name"            maxLength:"100"  doc:"Full name"                 example:"Ana Ruiz"`
		Email   string `json:"email"           maxLength:"254"  doc:"Email address"             example:"ana@example.com"`
		Phone   string `json:"phone,omitempty" maxLength:"40"   doc:"Phone, any format"         example:"+34 600 000 000"`
		Message string `json:"message"         maxLength:"5000" doc:"At least 10 characters"    example:"Quiero rediseñar la web de mi restaurante."`
	}
}

// ApplicationInput for POST /applications. Field names follow the form
// the relay has always received.
type ApplicationInput struct {
	Body struct {
		Nombre    string `json:"nombre"              maxLength:"100"  doc:"Full name"             example:"Ana Ruiz"`
		Email     string `json:"email"               maxLength:"254"  doc:"Email address"         example:"ana@example.com"`
		Telefono  string `json:"telefono,omitempty"  maxLength:"40"   doc:"Phone"`
		Portfolio string `json:"portfolio,omitempty" maxLength:"500"  doc:"Portfolio or LinkedIn URL"`
		Mensaje   string `json:"mensaje"             maxLength:"5000" doc:"Why you want to join"`
		Puesto    string `json:"puesto"              maxLength:"100"  doc:"One of the open positions or Otro" example:"Desarrollador Frontend"`
	}
}

// LiveChatInput for POST /live-chat/messages
type LiveChatInput struct {
	Body struct {
		Message string `json:"message" maxLength:"2000" doc:"Visitor message" example:"¿Cuánto cuesta una web profesional?"`
	}
}

// QuickMessagesInput for GET /live-chat/quick-messages (no parameters).
type QuickMessagesInput struct{}
