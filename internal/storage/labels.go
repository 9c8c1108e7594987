package storage

// DetectBackendLabel returns a normalized label for a store.
func DetectBackendLabel(store ImageStore) string {
	switch s := store.(type) {
	case *instrumentedStore:
		return s.label
	case *RedisStore:
		return "redis"
	case *SQLiteStore:
		return "sqlite"
	case *FileStore:
		return "file"
	default:
		return "unknown"
	}
}
