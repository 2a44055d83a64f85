package membership

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestRole_Ordering(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RolePresident))
	assert.True(t, RoleR4.AtLeast(RoleR4))
	assert.False(t, RoleMember.AtLeast(RoleR4))

	r, ok := ParseRole(" R5 ")
	require.True(t, ok)
	assert.Equal(t, RoleR5, r)

	_, ok = ParseRole("emperor")
	assert.False(t, ok)
}

func TestNewProfile(t *testing.T) {
	id := uuid.New()
	p := NewProfile(id, "  Warlord@Example.com ")

	assert.Equal(t, id, p.ID)
	assert.Equal(t, "warlord@example.com", p.Email)
	assert.Equal(t, "warlord", p.Username)
	assert.Equal(t, RoleUser, p.Role)
}

func TestNewProfile_DerivedUsernameFitsColumn(t *testing.T) {
	p := NewProfile(uuid.New(), "averyveryverylongfirstname.lastname.guild@example.com")
	assert.Equal(t, 32, RuneLen(p.Username))
	assert.Equal(t, "averyveryverylongfirstname.lastn", p.Username)

	p = NewProfile(uuid.New(), "ab@example.com")
	assert.Empty(t, p.Username)

	p = NewProfile(uuid.New(), "ｆｒｏｓｔ@example.com")
	assert.Equal(t, "frost", p.Username)

	// a derived name can always be saved back unchanged
	long := NewProfile(uuid.New(), strings.Repeat("é", 40)+"@example.com")
	require.NoError(t, long.UpdateDetails(&long.Username, nil))
}

func TestProfile_UpdateDetails(t *testing.T) {
	p := NewProfile(uuid.New(), "a@b.co")

	require.NoError(t, p.UpdateDetails(ptr("  Frost   Queen "), ptr("123456")))
	assert.Equal(t, "Frost Queen", p.Username)
	assert.Equal(t, "123456", p.GamePlayerID)

	assert.Error(t, p.UpdateDetails(ptr("ab"), nil))
	err := p.UpdateDetails(nil, ptr("12ab"))
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestProfile_Assign(t *testing.T) {
	p := NewProfile(uuid.New(), "a@b.co")
	alliance := uuid.New()

	err := p.Assign(RoleR4, nil, true)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput), "alliance roles need an alliance")

	require.NoError(t, p.Assign(RoleR4, &alliance, true))
	assert.True(t, p.CanEditAlliance)

	require.NoError(t, p.Assign(RoleR5, &alliance, true))
	assert.False(t, p.CanEditAlliance, "grant is dropped for non-R4 roles")

	require.NoError(t, p.Assign(RolePresident, nil, false))
	assert.Nil(t, p.AllianceID)
}

func TestProfile_CanEditAllianceInfo(t *testing.T) {
	alliance := uuid.New()
	other := uuid.New()

	tests := []struct {
		name    string
		role    Role
		in      *uuid.UUID
		canEdit bool
		want    bool
	}{
		{"admin anywhere", RoleAdmin, nil, false, true},
		{"president anywhere", RolePresident, nil, false, true},
		{"r5 of alliance", RoleR5, &alliance, false, true},
		{"r5 of other alliance", RoleR5, &other, false, false},
		{"r4 with grant", RoleR4, &alliance, true, true},
		{"r4 without grant", RoleR4, &alliance, false, false},
		{"member", RoleMember, &alliance, false, false},
		{"user", RoleUser, nil, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProfile(uuid.New(), "x@y.z")
			require.NoError(t, p.Assign(tt.role, tt.in, tt.canEdit))
			assert.Equal(t, tt.want, p.CanEditAllianceInfo(alliance))
		})
	}
}

func TestProfile_ScopeChecks(t *testing.T) {
	alliance := uuid.New()
	p := NewProfile(uuid.New(), "x@y.z")
	require.NoError(t, p.Assign(RoleMember, &alliance, false))

	assert.True(t, p.CanViewAlliance(alliance))
	assert.False(t, p.CanManageAlliance(alliance))
	assert.False(t, p.CanViewAlliance(uuid.New()))

	p.LeaveAlliance()
	assert.Equal(t, RoleUser, p.Role)
	assert.False(t, p.CanViewAlliance(alliance))
}

func TestNewAlliance(t *testing.T) {
	a, err := NewAlliance(AllianceInput{
		Tag:        ptr(" wlf "),
		Name:       ptr("Winter  Wolves"),
		DiscordURL: ptr("https://discord.gg/abc"),
		Power:      ptr(int64(1_500_000_000)),
	})
	require.NoError(t, err)
	assert.Equal(t, "WLF", a.Tag)
	assert.Equal(t, "Winter Wolves", a.Name)
	assert.Equal(t, RecruitmentOpen, a.RecruitmentStatus)
	assert.True(t, a.AcceptsApplications())

	tests := []struct {
		name string
		in   AllianceInput
	}{
		{"missing name", AllianceInput{Tag: ptr("ABC")}},
		{"tag too long", AllianceInput{Tag: ptr("ABCDEF"), Name: ptr("x")}},
		{"tag punctuation", AllianceInput{Tag: ptr("A-B"), Name: ptr("x")}},
		{"negative power", AllianceInput{Tag: ptr("AB"), Name: ptr("x"), Power: ptr(int64(-1))}},
		{"too many members", AllianceInput{Tag: ptr("AB"), Name: ptr("x"), MemberCount: ptr(101)}},
		{"plain http discord", AllianceInput{Tag: ptr("AB"), Name: ptr("x"), DiscordURL: ptr("http://discord.gg/x")}},
		{"bad status", AllianceInput{Tag: ptr("AB"), Name: ptr("x"), RecruitmentStatus: ptr(RecruitmentStatus("maybe"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAlliance(tt.in)
			assert.True(t, errors.Is(err, shared.ErrInvalidInput))
		})
	}
}

func TestAlliance_Closed(t *testing.T) {
	a, err := NewAlliance(AllianceInput{Tag: ptr("AB"), Name: ptr("x"), RecruitmentStatus: ptr(RecruitmentClosed)})
	require.NoError(t, err)
	assert.False(t, a.AcceptsApplications())
}

func TestNormalizeTag_FullWidth(t *testing.T) {
	assert.Equal(t, "ABC", NormalizeTag("ａｂｃ"))
}
