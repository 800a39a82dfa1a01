package service

import (
	"context"
	"testing"

	"assetflow/internal/core"
	"assetflow/internal/database/mongodb/model"
	"assetflow/internal/dto"
	cErr "assetflow/internal/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }

func TestPersonRegisterIsIdempotent(t *testing.T) {
	f := newFixture()
	svc := f.personService()
	caller := core.Caller{Email: "new@acme.io"}
	req := &dto.RegisterPersonDto{Email: "New@Acme.io", Name: "Nia"}

	first, err := svc.Register(context.Background(), caller, req)
	require.NoError(t, err)
	require.NotNil(t, first.InsertedID)
	assert.Equal(t, messagePersonCreated, first.Message)

	second, err := svc.Register(context.Background(), caller, req)
	require.NoError(t, err)
	assert.Nil(t, second.InsertedID)
	assert.Equal(t, messagePersonExists, second.Message)

	count := 0
	for _, p := range f.persons.byID {
		if p.Email == "new@acme.io" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestPersonRegisterRequiresOwnEmail(t *testing.T) {
	f := newFixture()
	_, err := f.personService().Register(context.Background(), core.Caller{Email: "a@acme.io"}, &dto.RegisterPersonDto{Email: "b@acme.io"})
	requireErrCode(t, err, cErr.FORBIDDEN)
}

func TestPersonListTeamAndUnaffiliated(t *testing.T) {
	f := newFixture()
	svc := f.personService()

	team, err := svc.List(context.Background(), f.caller(f.hr), f.hr.Email, "")
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, f.employee.Email, team[0].Email)

	free, err := svc.List(context.Background(), f.caller(f.hr), "", "sa")
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, f.stranger.Email, free[0].Email)

	_, err = svc.List(context.Background(), f.caller(f.hr), f.otherHR.Email, "")
	requireErrCode(t, err, cErr.FORBIDDEN)
}

func TestPersonListTeamVisibility(t *testing.T) {
	f := newFixture()
	svc := f.personService()

	_, err := svc.ListTeam(context.Background(), f.caller(f.employee), f.hr.Email)
	require.NoError(t, err)
	_, err = svc.ListTeam(context.Background(), f.caller(f.stranger), f.hr.Email)
	requireErrCode(t, err, cErr.FORBIDDEN)
	_, err = svc.ListTeam(context.Background(), f.caller(f.otherHR), f.hr.Email)
	requireErrCode(t, err, cErr.FORBIDDEN)
}

func TestPersonGetRole(t *testing.T) {
	f := newFixture()
	svc := f.personService()

	role, err := svc.GetRole(context.Background(), f.hr.Email)
	require.NoError(t, err)
	assert.Equal(t, core.RoleHRManager, role.Role)

	role, err = svc.GetRole(context.Background(), "ghost@acme.io")
	require.NoError(t, err)
	assert.Equal(t, core.RoleUnset, role.Role)
}

func TestPersonPatch(t *testing.T) {
	f := newFixture()
	svc := f.personService()
	ctx := context.Background()

	updated, err := svc.Patch(ctx, f.caller(f.stranger), f.stranger.ID, &dto.PatchPersonDto{Name: strPtr("Samuel")})
	require.NoError(t, err)
	assert.Equal(t, "Samuel", updated.Name)

	_, err = svc.Patch(ctx, f.caller(f.stranger), f.employee.ID, &dto.PatchPersonDto{Name: strPtr("x")})
	requireErrCode(t, err, cErr.FORBIDDEN)

	_, err = svc.Patch(ctx, f.caller(f.hr), f.stranger.ID, &dto.PatchPersonDto{HREmail: strPtr(f.otherHR.Email)})
	requireErrCode(t, err, cErr.FORBIDDEN)

	joined, err := svc.Patch(ctx, f.caller(f.hr), f.stranger.ID, &dto.PatchPersonDto{HREmail: strPtr(f.hr.Email)})
	require.NoError(t, err)
	assert.Equal(t, f.hr.Email, joined.HREmail)

	left, err := svc.Patch(ctx, f.caller(f.hr), f.stranger.ID, &dto.PatchPersonDto{HREmail: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, left.HREmail)

	_, err = svc.Patch(ctx, f.caller(f.hr), f.stranger.ID, &dto.PatchPersonDto{})
	requireErrCode(t, err, cErr.BAD_REQUEST_BODY)
	_, err = svc.Patch(ctx, f.caller(f.hr), primitive.NewObjectID(), &dto.PatchPersonDto{Name: strPtr("x")})
	requireErrCode(t, err, cErr.NOT_FOUND)
}

func TestPersonPatchRespectsPackageLimit(t *testing.T) {
	f := newFixture()
	hr := f.persons.byID[f.hr.ID]
	hr.Package = "basic" // 5 members
	f.persons.byID[f.hr.ID] = hr
	for i := 0; i < 4; i++ {
		_, err := f.persons.Create(context.Background(), &model.Person{
			Email:   primitive.NewObjectID().Hex() + "@acme.io",
			Role:    core.RoleEmployee,
			HREmail: f.hr.Email,
		})
		require.NoError(t, err)
	}

	_, err := f.personService().Patch(context.Background(), f.caller(f.hr), f.stranger.ID, &dto.PatchPersonDto{HREmail: strPtr(f.hr.Email)})
	requireErrCode(t, err, cErr.INVALID_STATE)
}

func TestPersonBulkPatchTouchesOnlyGivenIDs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	newcomer, err := f.persons.Create(ctx, &model.Person{Email: "new@acme.io", Name: "Nia", HREmail: f.hr.Email})
	require.NoError(t, err)

	role := core.RoleEmployee
	res, err := f.personService().BulkPatch(ctx, f.caller(f.hr),
		[]primitive.ObjectID{f.stranger.ID, newcomer.ID},
		dto.BulkPersonDataDto{Role: &role},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.MatchedCount)
	assert.Equal(t, int64(1), res.ModifiedCount)

	assert.Equal(t, core.RoleEmployee, f.persons.byID[newcomer.ID].Role)
	assert.Equal(t, core.RoleEmployee, f.persons.byID[f.stranger.ID].Role)
	assert.Equal(t, core.RoleHRManager, f.persons.byID[f.hr.ID].Role)
	assert.Equal(t, core.RoleHRManager, f.persons.byID[f.otherHR.ID].Role)

	_, err = f.personService().BulkPatch(ctx, f.caller(f.hr), nil, dto.BulkPersonDataDto{Role: &role})
	requireErrCode(t, err, cErr.BAD_REQUEST_BODY)
}

func TestPersonPatchScopedToOwnTeam(t *testing.T) {
	f := newFixture()
	svc := f.personService()
	ctx := context.Background()
	role := core.RoleEmployee

	// 其他 HR 不能動別隊成員
	_, err := svc.Patch(ctx, f.caller(f.otherHR), f.employee.ID, &dto.PatchPersonDto{HREmail: strPtr(""), Name: strPtr("pwned")})
	requireErrCode(t, err, cErr.FORBIDDEN)
	assert.Equal(t, f.hr.Email, f.persons.byID[f.employee.ID].HREmail)
	assert.Equal(t, "Eli", f.persons.byID[f.employee.ID].Name)

	// 也不能動另一位 HR
	_, err = svc.Patch(ctx, f.caller(f.hr), f.otherHR.ID, &dto.PatchPersonDto{Name: strPtr("x")})
	requireErrCode(t, err, cErr.FORBIDDEN)
	_, err = svc.BulkPatch(ctx, f.caller(f.otherHR), []primitive.ObjectID{f.hr.ID}, dto.BulkPersonDataDto{Role: &role})
	requireErrCode(t, err, cErr.FORBIDDEN)
	assert.Equal(t, core.RoleHRManager, f.persons.byID[f.hr.ID].Role)

	// 混入一筆不可管理的 id，整批都不更新
	_, err = svc.BulkPatch(ctx, f.caller(f.hr), []primitive.ObjectID{f.stranger.ID, f.otherHR.ID}, dto.BulkPersonDataDto{Name: strPtr("Same")})
	requireErrCode(t, err, cErr.FORBIDDEN)
	assert.Equal(t, "Sam", f.persons.byID[f.stranger.ID].Name)
	assert.Equal(t, "Otto", f.persons.byID[f.otherHR.ID].Name)

	// 本人與自己團隊仍可更新
	_, err = svc.Patch(ctx, f.caller(f.employee), f.employee.ID, &dto.PatchPersonDto{Name: strPtr("Elias")})
	require.NoError(t, err)
	_, err = svc.Patch(ctx, f.caller(f.hr), f.employee.ID, &dto.PatchPersonDto{PhotoURL: strPtr("https://img/eli.png")})
	require.NoError(t, err)
	assert.Equal(t, "Elias", f.persons.byID[f.employee.ID].Name)
}

func TestPersonBulkJoinCountsOnlyNewMembers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	hr := f.persons.byID[f.hr.ID]
	hr.Package = "basic" // 5 members
	f.persons.byID[f.hr.ID] = hr
	for i := 0; i < 3; i++ {
		_, err := f.persons.Create(ctx, &model.Person{
			Email:   primitive.NewObjectID().Hex() + "@acme.io",
			Role:    core.RoleEmployee,
			HREmail: f.hr.Email,
		})
		require.NoError(t, err)
	}
	loner, err := f.persons.Create(ctx, &model.Person{Email: "loner@acme.io", Role: core.RoleEmployee})
	require.NoError(t, err)

	// 4 人在隊，employee 已是成員，只有 stranger 佔名額
	res, err := f.personService().BulkPatch(ctx, f.caller(f.hr),
		[]primitive.ObjectID{f.employee.ID, f.stranger.ID},
		dto.BulkPersonDataDto{HREmail: strPtr(f.hr.Email)},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.MatchedCount)
	assert.Equal(t, f.hr.Email, f.persons.byID[f.stranger.ID].HREmail)

	_, err = f.personService().BulkPatch(ctx, f.caller(f.hr),
		[]primitive.ObjectID{f.employee.ID, loner.ID},
		dto.BulkPersonDataDto{HREmail: strPtr(f.hr.Email)},
	)
	requireErrCode(t, err, cErr.INVALID_STATE)
	assert.Empty(t, f.persons.byID[loner.ID].HREmail)
}

func TestPersonProfileVisibility(t *testing.T) {
	f := newFixture()
	svc := f.personService()

	_, err := svc.Profile(context.Background(), f.caller(f.hr), f.employee.Email)
	require.NoError(t, err)
	_, err = svc.Profile(context.Background(), f.caller(f.otherHR), f.employee.Email)
	requireErrCode(t, err, cErr.FORBIDDEN)
	_, err = svc.Profile(context.Background(), f.caller(f.hr), "ghost@acme.io")
	requireErrCode(t, err, cErr.NOT_FOUND)
}
