package validation

import (
	"testing"

	"mcq-generator/internal/domain"
	"mcq-generator/internal/dto"
	"mcq-generator/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGenerateParams(t *testing.T) {
	v := NewValidator(20)

	tests := []struct {
		name       string
		num        string
		difficulty string
		wantCount  int
		wantDiff   domain.Difficulty
		wantFields []string
	}{
		{name: "defaults", wantCount: 0, wantDiff: domain.DifficultyMedium},
		{name: "explicit", num: " 7 ", difficulty: "HARD", wantCount: 7, wantDiff: domain.DifficultyHard},
		{name: "not a number", num: "five", wantFields: []string{"num_questions"}},
		{name: "zero", num: "0", wantFields: []string{"num_questions"}},
		{name: "too many", num: "21", wantFields: []string{"num_questions"}},
		{name: "bad difficulty", num: "3", difficulty: "extreme", wantFields: []string{"difficulty"}},
		{name: "both bad", num: "-1", difficulty: "x", wantFields: []string{"num_questions", "difficulty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, errs := v.ValidateGenerateParams(tt.num, tt.difficulty, "")
			if len(tt.wantFields) == 0 {
				require.Empty(t, errs)
				assert.Equal(t, tt.wantCount, params.Count)
				assert.Equal(t, tt.wantDiff, params.Difficulty)
				return
			}
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestValidateGenerateParams_Title(t *testing.T) {
	v := NewValidator(20)

	params, errs := v.ValidateGenerateParams("", "", "  Chapter 1  ")
	require.Empty(t, errs)
	assert.Equal(t, "Chapter 1", params.Title)

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	_, errs = v.ValidateGenerateParams("", "", string(long))
	require.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].Field)
}

func TestValidateSetID(t *testing.T) {
	v := NewValidator(20)

	assert.Empty(t, v.ValidateSetID(util.NewULID()))

	errs := v.ValidateSetID("")
	require.Len(t, errs, 1)
	assert.Equal(t, "is required", errs[0].Message)

	errs = v.ValidateSetID("not-a-ulid")
	require.Len(t, errs, 1)
	assert.Equal(t, "has an invalid format", errs[0].Message)
}

func TestValidateStruct(t *testing.T) {
	v := NewValidator(20)

	assert.Empty(t, v.ValidateStruct(dto.ListQuery{Limit: 10}))
	assert.Empty(t, v.ValidateStruct(dto.ListQuery{}))

	errs := v.ValidateStruct(dto.ListQuery{Limit: 500})
	require.Len(t, errs, 1)
	assert.Equal(t, "limit", errs[0].Field)
	assert.Equal(t, "must be at most 100", errs[0].Message)

	long := make([]rune, 201)
	for i := range long {
		long[i] = 'b'
	}
	errs = v.ValidateStruct(dto.ExportRequest{Title: string(long)})
	require.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].Field)
}
