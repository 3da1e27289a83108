package storage

import (
	"fmt"

	"github.com/stor-a-gentic/server/internal/agent/model"
)

// row is an ordered column/value list for an INSERT.
type row struct {
	columns []string
	values  []any
}

func (r *row) add(column string, value any) {
	r.columns = append(r.columns, column)
	r.values = append(r.values, value)
}

func (r *row) addOptional(column, value string) {
	if value != "" {
		r.add(column, value)
	}
}

// rowOf maps a record to the columns of its collection. Server-side
// defaults (id, created_at) are never written.
func rowOf(c model.Collection, record any) (row, error) {
	var r row
	switch v := record.(type) {
	case *model.FaqEntry:
		return rowOf(c, *v)
	case *model.Inquiry:
		return rowOf(c, *v)
	case *model.ServiceRequest:
		return rowOf(c, *v)
	case model.FaqEntry:
		if c != model.CollectionFAQs {
			break
		}
		r.add("question", v.Question)
		r.add("answer", v.Answer)
		r.addOptional("category", v.Category)
		return r, nil
	case model.Inquiry:
		if c != model.CollectionInquiries {
			break
		}
		r.add("user_id", v.UserID)
		r.add("message", v.Message)
		r.add("response", v.Response)
		return r, nil
	case model.ServiceRequest:
		if c != model.CollectionServiceRequests {
			break
		}
		status := v.Status
		if status == "" {
			status = model.StatusPending
		}
		if !status.Valid() {
			return row{}, fmt.Errorf("invalid service request status %q", status)
		}
		r.add("name", v.Name)
		r.add("email", v.Email)
		r.add("phone", v.Phone)
		r.add("service_type", v.ServiceType)
		r.add("date", v.Date)
		r.add("time", v.Time)
		r.addOptional("address", v.Address)
		r.addOptional("notes", v.Notes)
		r.add("status", string(status))
		return r, nil
	}
	return row{}, fmt.Errorf("cannot insert %T into %s", record, c)
}
