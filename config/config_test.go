package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":               "9090",
		"BAD_INT":            "ten",
		"DEBUG":              "true",
		"EMPTY":              "",
		"SYNDICATE":          " medium, ,linkedin ",
		"CONTACT_RATE_LIMIT": " 7 ",
	}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))

	assert.Equal(t, 9090, GetInt(c, "PORT", 8080))
	assert.Equal(t, 7, GetInt(c, "CONTACT_RATE_LIMIT", 5))
	assert.Equal(t, 3, GetInt(c, "BAD_INT", 3))
	assert.Equal(t, 3, GetInt(c, "MISSING", 3))

	assert.True(t, GetBool(c, "DEBUG", false))
	assert.True(t, GetBool(c, "PORT", true))
	assert.False(t, GetBool(c, "MISSING", false))

	assert.Equal(t, []string{"medium", "linkedin"}, GetList(c, "SYNDICATE"))
	assert.Nil(t, GetList(c, "EMPTY"))
}

func TestSplit(t *testing.T) {
	k, v := split("A=b=c")
	assert.Equal(t, "A", k)
	assert.Equal(t, "b=c", v)

	k, v = split("FLAG")
	assert.Equal(t, "FLAG", k)
	assert.Equal(t, "", v)
}

type fakeSSM struct {
	pages [][]ssmtypes.Parameter
	calls int
	err   error
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[f.calls]
	f.calls++
	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func param(name, value string) ssmtypes.Parameter {
	return ssmtypes.Parameter{Name: aws.String(name), Value: aws.String(value)}
}

func TestOverlayParametersEnvironmentWins(t *testing.T) {
	client := &fakeSSM{pages: [][]ssmtypes.Parameter{
		{param("/journal/prod/RESEND_API_KEY", "re_123"), param("/journal/prod/PORT", "1234")},
		{param("/journal/prod/nested/GEMINI_API_KEY", "g-key")},
	}}
	c := map[string]string{"PORT": "8080", "DB_TYPE": "supa"}

	added, err := overlayParameters(context.Background(), client, c, "/journal/prod")
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "8080", c["PORT"])
	assert.Equal(t, "re_123", c["RESEND_API_KEY"])
	assert.Equal(t, "g-key", c["GEMINI_API_KEY"])
}

func TestOverlayParametersReportsConfigError(t *testing.T) {
	client := &fakeSSM{err: errors.New("AccessDenied")}
	_, err := overlayParameters(context.Background(), client, map[string]string{}, "/journal")
	require.Error(t, err)
	assert.True(t, errs.IsConfigError(err))
}
