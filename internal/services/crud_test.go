package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/sustainchain-backend/internal/models"
	"github.com/javajoker/sustainchain-backend/internal/utils"
)

func TestUpdateMissingRowIsNotFound(t *testing.T) {
	f := newFixture(t)
	svc := NewOrganizationService(f.db)

	_, err := svc.Update(ctx, uuid.New(), &UpdateOrganizationRequest{Name: ptr("Renamed")})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, uuid.New(), &UpdateOrganizationRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTwiceIsNotFound(t *testing.T) {
	f := newFixture(t)
	svc := NewProductService(f.db)

	require.NoError(t, svc.Delete(ctx, f.product.ID))
	assert.ErrorIs(t, svc.Delete(ctx, f.product.ID), ErrNotFound)

	_, err := svc.Get(ctx, f.product.ID)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "product", nf.Resource)
}

func TestCreateWithDanglingReference(t *testing.T) {
	f := newFixture(t)
	svc := NewProductService(f.db)

	missing := uuid.New()
	_, err := svc.Create(ctx, &CreateProductRequest{Name: "Orphan", Category: "Wood", SupplierID: missing})
	require.ErrorIs(t, err, ErrInvalidReference)

	var ref *ReferenceError
	require.True(t, errors.As(err, &ref))
	assert.Equal(t, missing, ref.ID)
	assert.Equal(t, int64(1), count[models.Product](t, f.db))
}

func TestListPaginates(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"B", "C", "D"} {
		f.addOrg(t, name)
	}
	svc := NewOrganizationService(f.db)

	orgs, total, err := svc.List(ctx, OrganizationFilter{
		PaginationParams: utils.PaginationParams{Page: 2, Limit: 3, Sort: "name", Order: "asc"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, orgs, 1)
	assert.Equal(t, "EcoForest", orgs[0].Name)
}

func TestProductVerify(t *testing.T) {
	f := newFixture(t)
	svc := NewProductService(f.db)

	p, err := svc.Verify(ctx, f.product.ID, &VerifyProductRequest{IsDeforestationFree: true, VerificationMethod: "Field audit"})
	require.NoError(t, err)
	assert.True(t, p.IsVerified)
	assert.True(t, p.IsDeforestationFree)
	assert.Equal(t, "Field audit", p.VerificationMethod)
	assert.NotNil(t, p.VerificationDate)
}

func TestSignUpAndSignIn(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.db, testConfig(t))

	user, err := svc.SignUp(ctx, &SignUpRequest{Username: "maria", Email: "maria@example.com", Password: "secret1", OrganizationID: &f.org.ID})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAnalyst, user.Role)

	_, err = svc.SignUp(ctx, &SignUpRequest{Username: "maria", Email: "other@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.SignUp(ctx, &SignUpRequest{Username: "root", Email: "root@example.com", Password: "secret1", Role: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrForbidden)

	resp, err := svc.SignIn(ctx, &SignInRequest{Username: "maria", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	claims, err := utils.ValidateJWT(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)

	_, err = svc.SignIn(ctx, &SignInRequest{Username: "maria", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, &SignInRequest{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserUpdateRules(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.db)
	admin := f.addUser(t, "admin", models.RoleAdmin)
	analyst := f.addUser(t, "analyst", models.RoleAnalyst)
	partner := f.addUser(t, "partner", models.RolePartner)

	_, err := svc.Update(ctx, analyst.ID, partner.ID, &UpdateUserRequest{FirstName: ptr("X")})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, analyst.ID, analyst.ID, &UpdateUserRequest{Role: ptr(models.RoleAdmin)})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, analyst.ID, analyst.ID, &UpdateUserRequest{Password: ptr("newpass1")})
	require.NoError(t, err)
	assert.NoError(t, updated.CheckPassword("newpass1"))

	updated, err = svc.Update(ctx, admin.ID, partner.ID, &UpdateUserRequest{Role: ptr(models.RoleSupplier)})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSupplier, updated.Role)

	_, err = svc.Update(ctx, admin.ID, partner.ID, &UpdateUserRequest{Email: ptr("analyst@example.com")})
	assert.ErrorIs(t, err, ErrConflict)
}
