package migrations

// Latest is the schema version a fully migrated database reports.
const Latest int64 = 16

// Kind is the sort of object a step creates.
type Kind int

const (
	KindTable Kind = iota
	KindColumn
	KindIndex
)

func (k Kind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindColumn:
		return "column"
	case KindIndex:
		return "index"
	default:
		return "unknown"
	}
}

// Step is one structural change. Table names the table the step creates or
// alters; Object is the column or index name for the other kinds.
type Step struct {
	Version int64
	Name    string
	Kind    Kind
	Table   string
	Object  string
	DDL     string
}

// steps is applied top to bottom. Tables precede the columns that refer to
// them, and columns precede their indexes. Never reorder or edit a released
// step; append a new one instead.
var steps = []Step{
	{
		Version: 1, Name: "create users", Kind: KindTable, Table: "users",
		DDL: `CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		Version: 2, Name: "create freight_details", Kind: KindTable, Table: "freight_details",
		DDL: `CREATE TABLE freight_details (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			goods_description TEXT NOT NULL,
			weight REAL NOT NULL,
			amount REAL NOT NULL,
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		Version: 3, Name: "create document_history", Kind: KindTable, Table: "document_history",
		DDL: `CREATE TABLE document_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			freight_id INTEGER NOT NULL REFERENCES freight_details(id) ON DELETE CASCADE,
			document_type TEXT NOT NULL CHECK (document_type IN ('bilty', 'invoice')),
			generated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		Version: 4, Name: "add freight discount", Kind: KindColumn, Table: "freight_details", Object: "discount",
		DDL: `ALTER TABLE freight_details ADD COLUMN discount REAL DEFAULT 0`,
	},
	{
		Version: 5, Name: "add freight taxes", Kind: KindColumn, Table: "freight_details", Object: "taxes",
		DDL: `ALTER TABLE freight_details ADD COLUMN taxes REAL DEFAULT 0`,
	},
	{
		Version: 6, Name: "add freight eway_bill_number", Kind: KindColumn, Table: "freight_details", Object: "eway_bill_number",
		DDL: `ALTER TABLE freight_details ADD COLUMN eway_bill_number TEXT`,
	},
	{
		Version: 7, Name: "add freight eway_bill_date", Kind: KindColumn, Table: "freight_details", Object: "eway_bill_date",
		DDL: `ALTER TABLE freight_details ADD COLUMN eway_bill_date TEXT`,
	},
	{
		Version: 8, Name: "create company_profiles", Kind: KindTable, Table: "company_profiles",
		DDL: `CREATE TABLE company_profiles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			address TEXT,
			city TEXT,
			state TEXT,
			pincode TEXT,
			gstin TEXT,
			pan TEXT,
			phone TEXT,
			email TEXT,
			website TEXT,
			is_default INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		Version: 9, Name: "add freight company_profile_id", Kind: KindColumn, Table: "freight_details", Object: "company_profile_id",
		DDL: `ALTER TABLE freight_details ADD COLUMN company_profile_id INTEGER REFERENCES company_profiles(id) ON DELETE SET NULL`,
	},
	{
		Version: 10, Name: "create custom_fields", Kind: KindTable, Table: "custom_fields",
		DDL: `CREATE TABLE custom_fields (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id),
			field_name TEXT NOT NULL,
			field_label TEXT NOT NULL,
			field_type TEXT NOT NULL CHECK (field_type IN ('text', 'number', 'date', 'textarea', 'select')),
			is_required INTEGER NOT NULL DEFAULT 0,
			options TEXT,
			display_order INTEGER NOT NULL DEFAULT 0,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		Version: 11, Name: "add freight custom_fields", Kind: KindColumn, Table: "freight_details", Object: "custom_fields",
		DDL: `ALTER TABLE freight_details ADD COLUMN custom_fields TEXT`,
	},
	{
		Version: 12, Name: "add freight updated_at", Kind: KindColumn, Table: "freight_details", Object: "updated_at",
		DDL: `ALTER TABLE freight_details ADD COLUMN updated_at TEXT`,
	},
	{
		Version: 13, Name: "index freight owner", Kind: KindIndex, Table: "freight_details", Object: "idx_freight_details_user_id",
		DDL: `CREATE INDEX idx_freight_details_user_id ON freight_details(user_id)`,
	},
	{
		Version: 14, Name: "index history freight", Kind: KindIndex, Table: "document_history", Object: "idx_document_history_freight_id",
		DDL: `CREATE INDEX idx_document_history_freight_id ON document_history(freight_id)`,
	},
	{
		Version: 15, Name: "index profile owner", Kind: KindIndex, Table: "company_profiles", Object: "idx_company_profiles_user_id",
		DDL: `CREATE INDEX idx_company_profiles_user_id ON company_profiles(user_id)`,
	},
	{
		Version: 16, Name: "index custom field owner", Kind: KindIndex, Table: "custom_fields", Object: "idx_custom_fields_user_id",
		DDL: `CREATE INDEX idx_custom_fields_user_id ON custom_fields(user_id)`,
	},
}

// Steps returns a copy of the ordered step list.
func Steps() []Step {
	return append([]Step(nil), steps...)
}
