package sqlkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omniql-engine/sqlkit/engine/ast"
	"github.com/omniql-engine/sqlkit/engine/limit"
	"github.com/omniql-engine/sqlkit/engine/models"
)

func TestQuery_Scenario(t *testing.T) {
	q := Select("id", "title").From("posts").Where("status", "=", "1").LimitOffset(0, 10)
	sql, err := q.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id`,`title` FROM `posts` WHERE `status` = '1' LIMIT 0,10", sql)

	again, err := q.ToSQL()
	require.NoError(t, err)
	assert.Equal(t, sql, again)
}

func TestQuery_Select(t *testing.T) {
	tests := []struct {
		name string
		q    *Query
		want string
	}{
		{
			name: "star",
			q:    Select().From("users"),
			want: "SELECT * FROM `users`",
		},
		{
			name: "prefix and join",
			q: Select("u.id", "p.title").From("users u").TablePrefix("wp_").
				LeftJoin("posts", "p.user_id = u.id"),
			want: "SELECT u.id,p.title FROM users u LEFT JOIN `wp_posts` ON p.user_id = u.id",
		},
		{
			name: "or group order",
			q: Select("id").From("users").Where("age", ">", 18).
				WhereGroup(ast.Or, ast.NewTree().Add(ast.And, "role", "=", "admin").Add(ast.Or, "role", "=", "owner")).
				Group("id").Order("id", "DESC").Limit(5),
			want: "SELECT `id` FROM `users` WHERE `age` > '18' OR (`role` = 'admin' OR `role` = 'owner') GROUP BY id ORDER BY id DESC LIMIT 5",
		},
		{
			name: "empty in",
			q:    Select().From("users").WhereIn("id", []int{}),
			want: "SELECT * FROM `users` WHERE FALSE",
		},
		{
			name: "in and between",
			q:    Select().From("users").WhereIn("id", []int{1, 2}).Between("age", 1, 9),
			want: "SELECT * FROM `users` WHERE `id` IN ('1','2') AND `age` >= '1' AND `age` <= '9'",
		},
		{
			name: "raw and like",
			q:    Select().From("users").WhereRaw("deleted_at IS NULL").WhereLike([]string{"name"}, "%jo%"),
			want: "SELECT * FROM `users` WHERE (deleted_at IS NULL) AND (`name` LIKE '%jo%')",
		},
		{
			name: "order by values",
			q:    Select().From("users").OrderByValues("status", "b", "a"),
			want: "SELECT * FROM `users` ORDER BY FIELD(`status`,'b','a')",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := tt.q.ToSQL()
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
		})
	}
}

func TestQuery_Writes(t *testing.T) {
	sql, err := New("").Insert().From("users").SetRows([]map[string]any{
		{"name": "a", "age": 1},
		{"name": "b", "age": nil},
	}).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `users` (`age`,`name`) VALUES ('1','a'),(NULL,'b')", sql)

	sql, err = New("").Update().From("users").SetData(map[string]any{"name": "x"}).Where("id", "=", 3).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE `users` SET `name` = 'x' WHERE `id` = '3'", sql)

	sql, err = New("").Replace().From("users").SetData(map[string]any{"id": 3}).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "REPLACE INTO `users` SET `id` = '3'", sql)

	sql, err = New("").Delete().From("users").Where("id", "=", 3).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM `users` WHERE `id` = '3'", sql)
}

func TestQuery_StateErrors(t *testing.T) {
	_, err := Select().ToSQL()
	assert.ErrorIs(t, err, models.ErrState)

	_, err = New("").Insert().From("users").ToSQL()
	assert.ErrorIs(t, err, models.ErrState)

	_, err = New("").Insert().From("users").SetRows([]map[string]any{{"a": 1}, {"b": 2}}).ToSQL()
	assert.ErrorIs(t, err, models.ErrState)

	_, err = Select().From("users").Limit(-1).ToSQL()
	assert.ErrorIs(t, err, models.ErrRange)
	assert.Equal(t, "", Select().From("users").Limit(-1).String())
}

func TestQuery_RawSQL(t *testing.T) {
	q := New("select * from users where id > 3")
	assert.Equal(t, models.OpSelect, q.Operation())
	assert.False(t, q.IsWrite())
	assert.Equal(t, "select * from users where id > 3", q.String())

	assert.Equal(t, models.OpUnknown, New("SHOW TABLES").Operation())
	assert.True(t, New("delete from users").IsWrite())
}

func TestQuery_RawLimitPatching(t *testing.T) {
	sql, err := New("SELECT * FROM users LIMIT 10,20").Limit(5).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users LIMIT 10,5", sql)

	sql, err = New("SELECT * FROM users LIMIT 10").Paginate(limit.Page(5, 10)).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users LIMIT 5,5", sql)

	_, err = New("SELECT * FROM users LIMIT 0,10").Paginate(limit.Page(15, 5)).ToSQL()
	var rangeErr *models.RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 15, rangeErr.PageOffset)

	_, err = New("SELECT * FROM users LIMIT ALL").Limit(3).ToSQL()
	var parseErr *models.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestQuery_PaginateComposes(t *testing.T) {
	q := Select().From("users").LimitOffset(10, 20).Paginate(limit.Size(5))
	assert.Equal(t, "SELECT * FROM `users` LIMIT 10,5", q.String())

	q = Select().From("users").LimitOffset(0, 10).Paginate(limit.Page(10, 5))
	assert.Equal(t, "SELECT * FROM `users` LIMIT 10,0", q.String())
}

func TestQuery_CloneDoesNotAlias(t *testing.T) {
	base := Select("id").From("users").Where("a", "=", 1)
	page := base.Clone().Where("b", "=", 2).LimitOffset(0, 10)

	assert.Equal(t, "SELECT `id` FROM `users` WHERE `a` = '1'", base.String())
	assert.Equal(t, "SELECT `id` FROM `users` WHERE `a` = '1' AND `b` = '2' LIMIT 0,10", page.String())
}

func TestQuery_AddConditions(t *testing.T) {
	q := Select().From("users").AddConditions(
		ast.Leaf{Field: "a", Operator: "=", Value: 1},
		ast.Leaf{Logic: ast.Or, Field: "b", Operator: "IS", Value: nil},
	)
	assert.Equal(t, "SELECT * FROM `users` WHERE `a` = '1' OR `b` IS NULL", q.String())
}

func TestQuery_IsFullRowQuery(t *testing.T) {
	assert.True(t, Select().From("users").IsFullRowQuery())
	assert.True(t, Select("*").From("users").IsFullRowQuery())
	assert.False(t, Select("id").From("users").IsFullRowQuery())
}

func TestQuery_Validate(t *testing.T) {
	assert.NoError(t, Select("id").From("users").Where("id", "=", 1).Validate())
	err := New("SELEC id FROM users").Validate()
	assert.ErrorIs(t, err, models.ErrParse)
}
