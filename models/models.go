package models

// All lists the models managed by migrations.
func All() []interface{} {
	return []interface{}{
		&User{},
		&JournalEntry{},
		&News{},
		&Event{},
		&Document{},
		&Scrutin{},
		&Ballot{},
		&Survey{},
		&SurveyQuestion{},
		&SurveyResponse{},
	}
}
