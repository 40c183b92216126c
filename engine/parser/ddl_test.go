package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omniql-engine/sqlkit/engine/models"
)

const usersDDL = "CREATE TABLE `users` (\n" +
	"  `id` int(10) unsigned NOT NULL AUTO_INCREMENT COMMENT 'ID',\n" +
	"  `name` varchar(64) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL DEFAULT '' COMMENT 'Name(Display name)',\n" +
	"  `status` enum('A','B') NOT NULL DEFAULT 'A' COMMENT 'State(Active,Banned)',\n" +
	"  `roles` set('r','w','x') DEFAULT NULL COMMENT 'Roles(Read,Write)',\n" +
	"  `balance` decimal(10,2) NOT NULL DEFAULT '0.00',\n" +
	"  `bio` text,\n" +
	"  `note` varchar(255) DEFAULT 'it''s (not) a comment',\n" +
	"  `created` timestamp NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
	"  `updated` timestamp NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,\n" +
	"  `email` varchar(128) NOT NULL,\n" +
	"  PRIMARY KEY (`id`),\n" +
	"  UNIQUE KEY `uk_email` (`email`),\n" +
	"  KEY `idx_status` (`status`,`created`)\n" +
	") ENGINE=InnoDB AUTO_INCREMENT=12 DEFAULT CHARSET=utf8mb4 COMMENT='User accounts'"

func TestParse_Table(t *testing.T) {
	table, err := Parse(usersDDL)
	require.NoError(t, err)

	assert.Equal(t, "users", table.Name)
	assert.Equal(t, "User accounts", table.Comment)
	assert.Equal(t, []string{"id", "name", "status", "roles", "balance", "bio", "note", "created", "updated", "email"}, table.Names())
	assert.Equal(t, "id", table.PrimaryKey().Name)
	assert.True(t, table.Attribute("email").IsUnique)
	assert.False(t, table.Attribute("status").IsUnique)
}

func TestParse_Columns(t *testing.T) {
	table, err := Parse(usersDDL)
	require.NoError(t, err)

	id := table.Attribute("id")
	assert.Equal(t, models.TypeInt, id.Type)
	assert.Equal(t, 10, id.Length)
	assert.True(t, id.IsReadonly)
	assert.False(t, id.IsNullAllowed)
	assert.Equal(t, "ID", id.Alias)
	assert.False(t, id.IsVirtual)

	name := table.Attribute("name")
	assert.Equal(t, models.TypeString, name.Type)
	assert.Equal(t, 64, name.Length)
	assert.Equal(t, "utf8mb4", name.Charset)
	assert.Equal(t, "utf8mb4_bin", name.Collate)
	assert.Equal(t, models.Literal(""), name.Default)
	assert.Equal(t, "Name", name.Alias)
	assert.Equal(t, "Display name", name.Description)

	roles := table.Attribute("roles")
	assert.Equal(t, models.TypeSet, roles.Type)
	assert.Equal(t, []models.Option{{Key: "r", Label: "r"}, {Key: "w", Label: "w"}, {Key: "x", Label: "x"}}, roles.Options)
	assert.Equal(t, models.DefaultNull, roles.Default.Kind)
	assert.True(t, roles.IsNullAllowed)

	balance := table.Attribute("balance")
	assert.Equal(t, models.TypeDecimal, balance.Type)
	assert.Equal(t, 10, balance.Length)
	assert.Equal(t, 2, balance.Precision)
	assert.Equal(t, models.Literal(0.0), balance.Default)

	bio := table.Attribute("bio")
	assert.Equal(t, 65535, bio.Length)
	assert.Equal(t, models.DefaultNone, bio.Default.Kind)

	note := table.Attribute("note")
	assert.Equal(t, models.Literal("it's (not) a comment"), note.Default)
	assert.Equal(t, "", note.Alias)

	created := table.Attribute("created")
	assert.Equal(t, models.DefaultCurrentTimestamp, created.Default.Kind)
	assert.False(t, created.OnUpdateCurrentTimestamp)
	assert.False(t, created.IsReadonly)
	assert.Equal(t, 0, created.Length)

	updated := table.Attribute("updated")
	assert.True(t, updated.OnUpdateCurrentTimestamp)
	assert.True(t, updated.IsReadonly)
	assert.True(t, updated.HasUpdateDefault())
}

func TestParseColumn_AgeRoundTrip(t *testing.T) {
	attr, err := ParseColumn("`age` int(11) NOT NULL DEFAULT '0' COMMENT 'Age'")
	require.NoError(t, err)

	assert.Equal(t, models.TypeInt, attr.Type)
	assert.Equal(t, 11, attr.Length)
	assert.False(t, attr.IsNullAllowed)
	assert.Equal(t, models.Literal(int64(0)), attr.Default)
	assert.Equal(t, "Age", attr.Alias)
}

func TestParseColumn_EnumOptionPairing(t *testing.T) {
	attr, err := ParseColumn("`status` enum('A','B') COMMENT 'State(Active,Banned)'")
	require.NoError(t, err)

	assert.Equal(t, models.TypeEnum, attr.Type)
	assert.Equal(t, []models.Option{{Key: "A", Label: "Active"}, {Key: "B", Label: "Banned"}}, attr.Options)
	assert.Equal(t, "State", attr.Alias)
}

func TestParseColumn_DirectiveOrderInsensitive(t *testing.T) {
	a, err := ParseColumn("`n` int(5) COMMENT 'N' DEFAULT '3' NOT NULL")
	require.NoError(t, err)
	b, err := ParseColumn("`n` int(5) NOT NULL DEFAULT '3' COMMENT 'N'")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseColumn_TimestampPrecision(t *testing.T) {
	attr, err := ParseColumn("`at` datetime(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3)")
	require.NoError(t, err)
	assert.Equal(t, models.TypeDatetime, attr.Type)
	assert.Equal(t, models.DefaultCurrentTimestamp, attr.Default.Kind)
	assert.True(t, attr.OnUpdateCurrentTimestamp)
}

func TestParse_ExpressionColumns(t *testing.T) {
	ddl := "CREATE TABLE `o` (\n" +
		"  `a` int NOT NULL,\n" +
		"  `b` int NOT NULL,\n" +
		"  `total` int GENERATED ALWAYS AS ((`a` * `b`)) VIRTUAL,\n" +
		"  `ratio` double GENERATED ALWAYS AS ((`a` / nullif(`b`,0))) STORED COMMENT 'Ratio',\n" +
		"  `next` int NOT NULL DEFAULT ((`a` + 1)),\n" +
		"  `flag` tinyint(1) GENERATED ALWAYS AS ((`a` >= `b`)) VIRTUAL,\n" +
		"  PRIMARY KEY (`a`)\n" +
		") ENGINE=InnoDB"
	table, err := Parse(ddl)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "total", "ratio", "next", "flag"}, table.Names())
	assert.Equal(t, models.TypeInt, table.Attribute("total").Type)
	assert.Equal(t, models.DefaultNone, table.Attribute("total").Default.Kind)
	assert.Equal(t, "Ratio", table.Attribute("ratio").Alias)
	assert.Equal(t, models.Literal("((`a` + 1))"), table.Attribute("next").Default)
	assert.Equal(t, "a", table.PrimaryKey().Name)
}

func TestParseColumn_UnsignedBigintDefault(t *testing.T) {
	attr, err := ParseColumn("`n` bigint unsigned NOT NULL DEFAULT '18446744073709551615'")
	require.NoError(t, err)
	assert.Equal(t, models.Literal(uint64(18446744073709551615)), attr.Default)

	attr, err = ParseColumn("`m` bigint NOT NULL DEFAULT '-9223372036854775808'")
	require.NoError(t, err)
	assert.Equal(t, models.Literal(int64(-9223372036854775808)), attr.Default)

	_, err = ParseColumn("`o` bigint unsigned DEFAULT '18446744073709551616'")
	assert.ErrorIs(t, err, models.ErrParse)
}

func TestParseColumn_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{"unknown type", "`geo` geometry NOT NULL", models.ErrTypeResolution},
		{"non numeric int default", "`n` int(11) DEFAULT 'abc'", models.ErrParse},
		{"unclosed comment", "`n` int(11) COMMENT 'oops", models.ErrParse},
		{"missing type", "`n`", models.ErrParse},
		{"enum without options", "`e` enum()", models.ErrParse},
		{"bad length", "`v` varchar(abc)", models.ErrParse},
		{"dangling default", "`v` varchar(3) DEFAULT", models.ErrParse},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseColumn(tc.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), err.Error())
		})
	}
}

func TestParse_TypeErrorCarriesLine(t *testing.T) {
	ddl := "CREATE TABLE `t` (\n  `id` int(11) NOT NULL,\n  `g` varchr(3)\n)"
	_, err := Parse(ddl)
	require.Error(t, err)

	var pe *models.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Line)
	assert.ErrorIs(t, err, models.ErrTypeResolution)
	assert.Contains(t, err.Error(), "varchar")
}

func TestParse_NoHeader(t *testing.T) {
	_, err := Parse("`id` int(11)")
	assert.ErrorIs(t, err, models.ErrParse)
}

func TestParse_KeyOnUnknownColumn(t *testing.T) {
	_, err := Parse("CREATE TABLE `t` (\n  `id` int(11),\n  PRIMARY KEY (`nope`)\n)")
	assert.ErrorIs(t, err, models.ErrParse)
}

func TestParse_CompositeKeysIgnored(t *testing.T) {
	table, err := Parse("CREATE TABLE `t` (\n  `a` int(11),\n  `b` int(11),\n  PRIMARY KEY (`a`,`b`)\n)")
	require.NoError(t, err)
	assert.Nil(t, table.PrimaryKey())
}

func TestParse_Idempotent(t *testing.T) {
	a, err := Parse(usersDDL)
	require.NoError(t, err)
	b, err := Parse(usersDDL)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseStrict(t *testing.T) {
	table, err := ParseStrict(usersDDL)
	require.NoError(t, err)
	assert.Len(t, table.Attributes, 10)

	// a column line the decoder skips is caught by the grammar cross-check
	ddl := "CREATE TABLE `t` (\n  `id` int(11) NOT NULL,\n  name varchar(3)\n)"
	_, err = ParseStrict(ddl)
	assert.ErrorIs(t, err, models.ErrParse)

	_, err = ParseStrict("CREATE TABLE `t` (\n  `id` int(11) NOT NULL\n")
	assert.ErrorIs(t, err, models.ErrParse)
}
