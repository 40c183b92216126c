package models

// ============================================================================
// ATTRIBUTE - typed metadata of one column
// ============================================================================

// Type is the attribute type an SQL column type resolves to.
type Type string

const (
	TypeInt       Type = "int"
	TypeFloat     Type = "float"
	TypeDecimal   Type = "decimal"
	TypeDouble    Type = "double"
	TypeString    Type = "string"
	TypeJSON      Type = "json"
	TypeEnum      Type = "enum"
	TypeSet       Type = "set"
	TypeBool      Type = "bool"
	TypeDate      Type = "date"
	TypeTime      Type = "time"
	TypeDatetime  Type = "datetime"
	TypeTimestamp Type = "timestamp"
	TypeYear      Type = "year"
)

// IsNumeric reports whether defaults of this type are coerced to numbers.
func (t Type) IsNumeric() bool {
	switch t {
	case TypeInt, TypeDecimal, TypeFloat, TypeDouble:
		return true
	}
	return false
}

// IsTemporal reports date and time types.
func (t Type) IsTemporal() bool {
	switch t {
	case TypeDate, TypeTime, TypeDatetime, TypeTimestamp, TypeYear:
		return true
	}
	return false
}

// HasOptions reports enum and set types.
func (t Type) HasOptions() bool {
	return t == TypeEnum || t == TypeSet
}

// DefaultKind classifies a column default.
type DefaultKind int

const (
	DefaultNone             DefaultKind = iota // No DEFAULT directive
	DefaultLiteral                             // Value holds an int64, uint64, float64 or string
	DefaultNull                                // Use NULL
	DefaultCurrentTimestamp                    // Use CURRENT_TIMESTAMP at write time
)

// Default is a column default: a literal or one of the sentinels.
type Default struct {
	Kind  DefaultKind
	Value any
}

// Literal builds a literal default.
func Literal(v any) Default {
	return Default{Kind: DefaultLiteral, Value: v}
}

// Option is one enum/set key with its display label.
type Option struct {
	Key   string
	Label string
}

// Attribute describes one column.
type Attribute struct {
	Name        string
	Type        Type
	Alias       string
	Description string
	Default     Default
	Length      int // 0 = not specified
	Precision   int // 0 = not specified
	Options     []Option
	Charset     string
	Collate     string

	IsPrimaryKey             bool
	IsReadonly               bool
	IsNullAllowed            bool
	IsUnique                 bool
	IsVirtual                bool
	OnUpdateCurrentTimestamp bool
}

// NewVirtual builds a computed attribute that has no backing column.
func NewVirtual(name string, t Type) *Attribute {
	return &Attribute{Name: name, Type: t, IsVirtual: true, IsNullAllowed: true}
}

// HasUserDefinedDefault reports a literal default.
func (a *Attribute) HasUserDefinedDefault() bool {
	return a.Default.Kind == DefaultLiteral
}

// HasSystemDefault reports a NULL or CURRENT_TIMESTAMP default.
func (a *Attribute) HasSystemDefault() bool {
	return a.Default.Kind == DefaultNull || a.Default.Kind == DefaultCurrentTimestamp
}

// HasUpdateDefault reports an ON UPDATE CURRENT_TIMESTAMP trigger.
func (a *Attribute) HasUpdateDefault() bool {
	return a.OnUpdateCurrentTimestamp
}

// Label returns the alias, falling back to the column name.
func (a *Attribute) Label() string {
	if a.Alias != "" {
		return a.Alias
	}
	return a.Name
}

// OptionLabel returns the label of an enum/set key, or the key itself.
func (a *Attribute) OptionLabel(key string) string {
	for _, o := range a.Options {
		if o.Key == key {
			return o.Label
		}
	}
	return key
}

// OptionKeys returns the raw option keys in declaration order.
func (a *Attribute) OptionKeys() []string {
	keys := make([]string, len(a.Options))
	for i, o := range a.Options {
		keys[i] = o.Key
	}
	return keys
}

// Clone returns a copy that shares no option storage.
func (a *Attribute) Clone() *Attribute {
	c := *a
	c.Options = append([]Option(nil), a.Options...)
	return &c
}
