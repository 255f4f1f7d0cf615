package wizard

// Record is what the conversation collects, one field per step.
type Record struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	ProjectType string `json:"projectType"`
	Budget      string `json:"budget"`
	Description string `json:"description"`
}

// Fields returns the record as the flat map sent to the relay.
func (r Record) Fields() map[string]string {
	return map[string]string{
		"name":        r.Name,
		"surname":     r.Surname,
		"email":       r.Email,
		"projectType": r.ProjectType,
		"budget":      r.Budget,
		"description": r.Description,
	}
}

// Complete reports whether every field is filled.
func (r Record) Complete() bool {
	for _, v := range r.Fields() {
		if v == "" {
			return false
		}
	}
	return true
}

// IsZero reports whether nothing has been collected.
func (r Record) IsZero() bool {
	return r == Record{}
}

func (r Record) templateData() map[string]any {
	return map[string]any{
		"Name":        r.Name,
		"Surname":     r.Surname,
		"Email":       r.Email,
		"ProjectType": r.ProjectType,
		"Budget":      r.Budget,
		"Description": r.Description,
	}
}

// RecordFromFields is the inverse of Fields.
func RecordFromFields(f map[string]string) Record {
	return Record{
		Name:        f["name"],
		Surname:     f["surname"],
		Email:       f["email"],
		ProjectType: f["projectType"],
		Budget:      f["budget"],
		Description: f["description"],
	}
}
