package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/dumpwatch/dumpwatch-api/schema"
	"github.com/dumpwatch/dumpwatch-api/store"
)

// signUp registers an account and creates the user profile with a zero score
func (s *Server) signUp(c *gin.Context) {
	logger := log.WithField("api", "signUp")

	var form signUpForm
	if err := c.BindJSON(&form); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	form.normalize()
	if errs := form.validate(); len(errs) > 0 {
		abortWithEncoding(c, http.StatusBadRequest,
			localizedError(c, errorInvalidForm, "status.form.invalid", nil, errs))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if shouldInterupt(err, c) {
		return
	}

	a, err := s.store.CreateAccount(form.Email, string(hash), form.FirstName+" "+form.LastName)
	if err != nil {
		if err == store.ErrEmailTaken {
			abortWithEncoding(c, http.StatusConflict,
				localizedError(c, errorAccountTaken, "status.signup.email_exists", nil,
					fieldErrors{"email": "field.email.taken"}))
			return
		}

		logger.WithError(err).Error("create account")
		abortWithEncoding(c, http.StatusInternalServerError,
			localizedError(c, errorInternalServer, "status.signup.error",
				map[string]interface{}{"Error": err.Error()}, nil), err)
		return
	}

	profile := schema.Profile{
		UID:       a.ID.String(),
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     a.Email,
		Age:       form.age(),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.mongoStore.CreateProfile(profile); err != nil {
		logger.WithError(err).WithField("uid", profile.UID).Error("create profile")
		if err := s.store.DeleteAccount(profile.UID); err != nil {
			logger.WithError(err).WithField("uid", profile.UID).Error("roll back account")
		}
		abortWithEncoding(c, http.StatusInternalServerError,
			localizedError(c, errorInternalServer, "status.signup.error",
				map[string]interface{}{"Error": err.Error()}, nil), err)
		return
	}

	tokenString, expireIn, err := s.issueToken(profile.UID)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":    profile,
		"jwt_token": tokenString,
		"expire_in": expireIn,
		"message": localize(c, "status.signup.success", map[string]interface{}{
			"FirstName": form.FirstName,
			"LastName":  form.LastName,
		}),
	})
}

// signIn exchanges an email and password for a JWT
func (s *Server) signIn(c *gin.Context) {
	var form signInForm
	if err := c.BindJSON(&form); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	form.normalize()
	if errs := form.validate(); len(errs) > 0 {
		abortWithEncoding(c, http.StatusBadRequest,
			localizedError(c, errorInvalidForm, "status.form.invalid", nil, errs))
		return
	}

	a, err := s.store.GetAccountByEmail(form.Email)
	if err != nil {
		if err == store.ErrAccountNotFound {
			s.metrics.Counter("auth.signin.failed").Inc(1)
			abortWithEncoding(c, http.StatusUnauthorized,
				localizedError(c, errorAccountNotFound, "status.signin.user_not_found", nil,
					fieldErrors{"email": "field.email.not_found"}))
			return
		}

		abortWithEncoding(c, http.StatusInternalServerError,
			localizedError(c, errorInternalServer, "status.signin.error",
				map[string]interface{}{"Error": err.Error()}, nil), err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(form.Password)); err != nil {
		s.metrics.Counter("auth.signin.failed").Inc(1)
		abortWithEncoding(c, http.StatusUnauthorized,
			localizedError(c, errorIncorrectPassword, "status.signin.incorrect_password", nil,
				fieldErrors{"password": "field.password.incorrect"}))
		return
	}

	tokenString, expireIn, err := s.issueToken(a.ID.String())
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jwt_token": tokenString,
		"expire_in": expireIn,
		"message":   localize(c, "status.signin.success", nil),
	})
}

// signOut revokes the token used for this request until it expires
func (s *Server) signOut(c *gin.Context) {
	tokenID := c.GetString("token_id")
	expireAt := c.GetTime("token_expire")

	if err := s.mongoStore.RevokeToken(tokenID, expireAt); shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  "OK",
		"message": localize(c, "status.signout.success", nil),
	})
}

// accountDetail is the API to query an account
func (s *Server) accountDetail(c *gin.Context) {
	a := c.MustGet("account")
	account, ok := a.(*schema.Account)
	if !ok {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": account,
	})
}

// accountDelete is the API to remove an account from our service
func (s *Server) accountDelete(c *gin.Context) {
	accountID := c.GetString("requester")

	if err := s.store.DeleteAccount(accountID); err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
