package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omniql-engine/sqlkit/engine/models"
)

func TestBuildCountSQL(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "projection replaced",
			sql:  "SELECT `id`,`title` FROM `posts` WHERE `status` = '1'",
			want: "SELECT COUNT(*) AS __NUM_COUNT__ FROM `posts` WHERE `status` = '1'",
		},
		{
			name: "group by wrapped",
			sql:  "SELECT user_id FROM posts GROUP BY user_id;",
			want: "SELECT COUNT(*) AS __NUM_COUNT__ FROM (SELECT user_id FROM posts GROUP BY user_id) AS cnt_",
		},
		{
			name: "distinct wrapped",
			sql:  "SELECT DISTINCT user_id FROM posts",
			want: "SELECT COUNT(*) AS __NUM_COUNT__ FROM (SELECT DISTINCT user_id FROM posts) AS cnt_",
		},
		{
			name: "limit wrapped",
			sql:  "SELECT * FROM posts LIMIT 0,10",
			want: "SELECT COUNT(*) AS __NUM_COUNT__ FROM (SELECT * FROM posts LIMIT 0,10) AS cnt_",
		},
		{
			name: "projected subquery wrapped",
			sql:  "SELECT (SELECT 1 FROM dual) AS x FROM posts",
			want: "SELECT COUNT(*) AS __NUM_COUNT__ FROM (SELECT (SELECT 1 FROM dual) AS x FROM posts) AS cnt_",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BuildCountSQL(tc.sql)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildCountSQL_NotSelect(t *testing.T) {
	_, err := BuildCountSQL("UPDATE posts SET a = 1")
	assert.ErrorIs(t, err, models.ErrParse)
}
