package store

// Settings returns the current app settings.
func (s *Store) Settings() Settings {
	return s.settings
}

// UpdateSettings applies fn to the settings singleton and persists the
// snapshot.
func (s *Store) UpdateSettings(fn func(*Settings)) error {
	fn(&s.settings)
	return s.save()
}
