package memory

import (
	"github.com/hashicorp/go-memdb"
)

const (
	tableSubmissions   = "projects"
	tableProfiles      = "profiles"
	tableAccounts      = "accounts"
	tableSessions      = "sessions"
	tableNotifications = "email_queue"
	tableActivity      = "activity_logs"

	indexID     = "id"
	indexStatus = "status"
	indexEmail  = "email"
)

func idIndex() *memdb.IndexSchema {
	return &memdb.IndexSchema{
		Name:    indexID,
		Unique:  true,
		Indexer: &memdb.StringFieldIndex{Field: "ID"},
	}
}

func statusIndex() *memdb.IndexSchema {
	return &memdb.IndexSchema{
		Name:    indexStatus,
		Indexer: &memdb.StringFieldIndex{Field: "Status"},
	}
}

func Schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableSubmissions: {
				Name: tableSubmissions,
				Indexes: map[string]*memdb.IndexSchema{
					indexID:     idIndex(),
					indexStatus: statusIndex(),
				},
			},
			tableProfiles: {
				Name: tableProfiles,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: idIndex(),
				},
			},
			tableAccounts: {
				Name: tableAccounts,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: idIndex(),
					indexEmail: {
						Name:    indexEmail,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Email", Lowercase: true},
					},
				},
			},
			tableSessions: {
				Name: tableSessions,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: idIndex(),
				},
			},
			tableNotifications: {
				Name: tableNotifications,
				Indexes: map[string]*memdb.IndexSchema{
					indexID:     idIndex(),
					indexStatus: statusIndex(),
				},
			},
			tableActivity: {
				Name: tableActivity,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: idIndex(),
				},
			},
		},
	}
}
