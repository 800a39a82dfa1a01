package service

import (
	"context"

	"assetflow/internal/core"
	"assetflow/internal/database/mongodb/model"
	"assetflow/internal/database/mongodb/repository"
	"assetflow/internal/dto"
	cErr "assetflow/internal/pkg/error"
	"assetflow/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	messagePersonCreated = "user created"
	messagePersonExists  = "user already exists"
)

type PersonService struct {
	trace    *telemetry.Trace
	persons  PersonStore
	requests AssetRequestStore
}

func NewPersonService(trace *telemetry.Trace, persons PersonStore, requests AssetRequestStore) *PersonService {
	return &PersonService{trace: trace, persons: persons, requests: requests}
}

// Register 自助註冊，同 email 只會有一筆
func (s *PersonService) Register(ctx context.Context, caller core.Caller, req *dto.RegisterPersonDto) (*dto.RegisterPersonResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	email := normalizeEmail(req.Email)
	if email != caller.Email {
		return nil, cErr.Forbidden("token email does not match")
	}
	if _, err := s.persons.GetByEmail(ctx, email); err == nil {
		return &dto.RegisterPersonResponseDto{Message: messagePersonExists}, nil
	} else if !repository.IsNotFound(err) {
		end(err)
		return nil, storeError(err, "", "Register")
	}

	created, err := s.persons.Create(ctx, &model.Person{
		Email:       email,
		Name:        req.Name,
		PhotoURL:    req.PhotoURL,
		Role:        req.Role,
		CompanyName: req.CompanyName,
		CompanyLogo: req.CompanyLogo,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		// 並發註冊由唯一索引擋下
		if repository.IsDuplicateKey(err) {
			return &dto.RegisterPersonResponseDto{Message: messagePersonExists}, nil
		}
		end(err)
		return nil, storeError(err, "", "Register")
	}
	insertedID := created.ID.Hex()
	return &dto.RegisterPersonResponseDto{Message: messagePersonCreated, InsertedID: &insertedID}, nil
}

// List HR 查自己的團隊，或查尚未加入任何團隊的人員
func (s *PersonService) List(ctx context.Context, caller core.Caller, hrEmail, searchText string) ([]*dto.PersonResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	hrEmail = normalizeEmail(hrEmail)
	if hrEmail != "" && hrEmail != caller.Email {
		return nil, cErr.Forbidden("hr_email must be your own email")
	}
	query := core.PersonQuery{HREmail: hrEmail, Unaffiliated: hrEmail == "", SearchText: searchText}
	persons, err := s.persons.List(ctx, query)
	s.trace.ApplyTraceAttributes(span, core.TraceListMeta{
		Op:          "persons.list",
		Filter:      map[string]any{"hr_email": hrEmail, "unaffiliated": query.Unaffiliated, "searchText": searchText},
		ResultCount: len(persons),
	})
	if err != nil {
		end(err)
		return nil, storeError(err, "", "ListPersons")
	}
	return mapSlice(persons, modelToPersonResponseDto), nil
}

// ListTeam 該 HR 本人或其團隊成員可查
func (s *PersonService) ListTeam(ctx context.Context, caller core.Caller, hrEmail string) ([]*dto.PersonResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	hrEmail = normalizeEmail(hrEmail)
	ownTeam := caller.IsHR() && caller.Email == hrEmail
	if !ownTeam && caller.HREmail != hrEmail {
		return nil, cErr.Forbidden("not a member of this team")
	}
	persons, err := s.persons.List(ctx, core.PersonQuery{HREmail: hrEmail})
	if err != nil {
		end(err)
		return nil, storeError(err, "", "ListTeam")
	}
	return mapSlice(persons, modelToPersonResponseDto), nil
}

// GetRole 未註冊者回傳空角色
func (s *PersonService) GetRole(ctx context.Context, email string) (*dto.RoleResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	person, err := s.persons.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if repository.IsNotFound(err) {
			return &dto.RoleResponseDto{Role: core.RoleUnset}, nil
		}
		end(err)
		return nil, storeError(err, "", "GetRole")
	}
	return &dto.RoleResponseDto{Role: person.Role}, nil
}

// Profile 人員資料加上由申請紀錄推導的資產
func (s *PersonService) Profile(ctx context.Context, caller core.Caller, email string) (*dto.ProfileResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	email = normalizeEmail(email)
	person, err := s.persons.GetByEmail(ctx, email)
	if err != nil {
		end(err)
		return nil, storeError(err, "user not found", "Profile")
	}
	if person.Email != caller.Email && !(caller.IsHR() && person.HREmail == caller.Email) {
		return nil, cErr.Forbidden("cannot view this profile")
	}
	requests, err := s.requests.List(ctx, core.AssetRequestQuery{EmployeeEmail: email})
	if err != nil {
		end(err)
		return nil, storeError(err, "", "Profile")
	}
	return &dto.ProfileResponseDto{
		PersonResponseDto: *modelToPersonResponseDto(person),
		Assets:            mapSlice(requests, modelToAssetRequestResponseDto),
	}, nil
}

// Patch 本人，或 HR 對自己團隊 / 尚未加入團隊的員工；hr_email 只能設成自己或清空
func (s *PersonService) Patch(ctx context.Context, caller core.Caller, id primitive.ObjectID, req *dto.PatchPersonDto) (*dto.PersonResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	patch := model.PersonPatch{
		Name:        req.Name,
		PhotoURL:    req.PhotoURL,
		HREmail:     normalizeEmailPtr(req.HREmail),
		CompanyLogo: req.CompanyLogo,
		CompanyName: req.CompanyName,
	}
	if patch.IsEmpty() {
		return nil, cErr.BadRequestBody("no fields to update")
	}

	person, err := s.persons.GetByID(ctx, id)
	if err != nil {
		end(err)
		return nil, storeError(err, "user not found", "PatchPerson")
	}
	if !canManage(caller, person) {
		return nil, cErr.Forbidden("cannot update this user")
	}
	if err := s.checkAffiliation(ctx, caller, patch.HREmail, countJoining(person, patch.HREmail)); err != nil {
		return nil, err
	}

	if _, err := s.persons.UpdateByID(ctx, id, patch); err != nil {
		end(err)
		return nil, storeError(err, "user not found", "PatchPerson")
	}
	patch.Apply(person)
	return modelToPersonResponseDto(person), nil
}

// BulkPatch 僅更新指定 ids，每一筆都必須是呼叫者可管理的人員
func (s *PersonService) BulkPatch(ctx context.Context, caller core.Caller, ids []primitive.ObjectID, data dto.BulkPersonDataDto) (*dto.BulkPatchResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	if len(ids) == 0 {
		return nil, cErr.BadRequestBody("ids must be a non-empty array")
	}
	patch := model.PersonPatch{
		Role:        data.Role,
		HREmail:     normalizeEmailPtr(data.HREmail),
		CompanyLogo: data.CompanyLogo,
		CompanyName: data.CompanyName,
		Name:        data.Name,
		PhotoURL:    data.PhotoURL,
	}
	if patch.IsEmpty() {
		return nil, cErr.BadRequestBody("no fields to update")
	}
	targets, err := s.persons.ListByIDs(ctx, ids)
	if err != nil {
		end(err)
		return nil, storeError(err, "", "BulkPatchPersons")
	}
	joining := 0
	for _, person := range targets {
		if !canManage(caller, person) {
			return nil, cErr.Forbidden("cannot update user " + person.Email)
		}
		joining += countJoining(person, patch.HREmail)
	}
	if err := s.checkAffiliation(ctx, caller, patch.HREmail, joining); err != nil {
		return nil, err
	}

	matched, modified, err := s.persons.UpdateMany(ctx, ids, patch)
	if err != nil {
		end(err)
		return nil, storeError(err, "", "BulkPatchPersons")
	}
	return &dto.BulkPatchResponseDto{MatchedCount: matched, ModifiedCount: modified}, nil
}

// checkAffiliation 限制 hr_email 的寫入，加入團隊時檢查方案人數上限
func (s *PersonService) checkAffiliation(ctx context.Context, caller core.Caller, hrEmail *string, joining int) error {
	if hrEmail == nil || *hrEmail == "" {
		return nil
	}
	if !caller.IsHR() || *hrEmail != caller.Email {
		return cErr.Forbidden("hr_email can only be set to your own email")
	}
	if joining == 0 {
		return nil
	}
	hr, err := s.persons.GetByEmail(ctx, caller.Email)
	if err != nil {
		return storeError(err, "hr manager not found", "CheckAffiliation")
	}
	pkg, ok := core.FindSubscriptionPackage(hr.Package)
	if !ok {
		// 未購買方案不限制人數
		return nil
	}
	members, err := s.persons.CountByHR(ctx, caller.Email)
	if err != nil {
		return storeError(err, "", "CheckAffiliation")
	}
	if int(members)+joining > pkg.MemberLimit {
		return cErr.InvalidState("team member limit of the current package reached")
	}
	return nil
}

// canManage 本人；或 HR 對自己團隊成員與尚未加入團隊的非 HR 人員
func canManage(caller core.Caller, person *model.Person) bool {
	if person.Email == caller.Email {
		return true
	}
	if !caller.IsHR() {
		return false
	}
	if person.HREmail == caller.Email {
		return true
	}
	return person.HREmail == "" && person.Role != core.RoleHRManager
}

func countJoining(person *model.Person, hrEmail *string) int {
	if hrEmail == nil || *hrEmail == "" || person.HREmail == *hrEmail {
		return 0
	}
	return 1
}

func normalizeEmailPtr(email *string) *string {
	if email == nil {
		return nil
	}
	normalized := normalizeEmail(*email)
	return &normalized
}
