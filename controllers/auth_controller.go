package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"pintdiary/config"
	"pintdiary/db"
	"pintdiary/models"
	"pintdiary/structs"
	"pintdiary/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/gin-gonic/gin"
)

var authCfg *config.Config

// InitAuthService stores the Cognito configuration for the auth handlers.
func InitAuthService(cfg *config.Config) {
	authCfg = cfg
}

func cognitoClient(ctx context.Context) (*cognitoidentityprovider.Client, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(authCfg.Cognito.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cognitoidentityprovider.NewFromConfig(awsCfg), nil
}

// SignUp registers the user with Cognito and seeds their diary document
// with zeroed counters.
func SignUp(ctx *gin.Context) {
	var request structs.SignUpRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	client, err := cognitoClient(ctx)
	if err != nil {
		log.Println("Error loading AWS config:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign up"})
		return
	}

	displayName := request.DisplayName
	if displayName == "" {
		displayName = utils.ExtractNameFromEmail(request.Email)
	}

	secretHash := utils.GenerateSecretHash(request.Email, authCfg.Cognito.AppClientId, authCfg.Cognito.AppClientSecret)
	signupInput := cognitoidentityprovider.SignUpInput{
		ClientId:   aws.String(authCfg.Cognito.AppClientId),
		Password:   aws.String(request.Password),
		SecretHash: aws.String(secretHash),
		Username:   aws.String(request.Email),
		UserAttributes: []types.AttributeType{
			{
				Name:  aws.String("email"),
				Value: aws.String(request.Email),
			},
			{
				Name:  aws.String("nickname"),
				Value: aws.String(displayName),
			},
		},
	}

	signupOutput, err := client.SignUp(ctx, &signupInput)
	if err != nil {
		log.Println("Error during sign-up:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign up", "message": err.Error()})
		return
	}

	// Seed the diary document under the Cognito-issued uid. Counters start
	// at zero and only move with pint activity.
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user := &models.User{
		UID:         aws.ToString(signupOutput.UserSub),
		DisplayName: displayName,
		Email:       request.Email,
		CreatedAt:   time.Now(),
	}
	if err := db.CreateUser(dbCtx, user); err != nil {
		log.Printf("Failed to seed user doc for %s: %v", user.UID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign up"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sign-up successful"})
}

// VerifyEmail confirms the signup code sent by Cognito.
func VerifyEmail(ctx *gin.Context) {
	var request structs.VerifyEmailRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	client, err := cognitoClient(ctx)
	if err != nil {
		log.Println("Error loading AWS config:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}

	secretHash := utils.GenerateSecretHash(request.Email, authCfg.Cognito.AppClientId, authCfg.Cognito.AppClientSecret)
	confirmInput := cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(authCfg.Cognito.AppClientId),
		ConfirmationCode: aws.String(request.ConfirmationCode),
		SecretHash:       aws.String(secretHash),
		Username:         aws.String(request.Email),
	}

	if _, err := client.ConfirmSignUp(ctx, &confirmInput); err != nil {
		log.Println("Error during email verification:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Email verification successful"})
}

// Login authenticates against Cognito and issues the session JWT carrying
// the Cognito uid.
func Login(ctx *gin.Context) {
	var request structs.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "Check email and password format"})
		return
	}

	client, err := cognitoClient(ctx)
	if err != nil {
		log.Println("Error loading AWS config:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	secretHash := utils.GenerateSecretHash(request.Email, authCfg.Cognito.AppClientId, authCfg.Cognito.AppClientSecret)
	authInput := cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(authCfg.Cognito.AppClientId),
		AuthParameters: map[string]string{
			"USERNAME":    request.Email,
			"PASSWORD":    request.Password,
			"SECRET_HASH": secretHash,
		},
	}

	authOutput, err := client.InitiateAuth(ctx, &authInput)
	if err != nil || authOutput.AuthenticationResult == nil {
		log.Println("Error during sign-in:", err)
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to sign in", "message": "Invalid email or password"})
		return
	}

	// Resolve the opaque uid (Cognito sub) behind the access token.
	userOutput, err := client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{
		AccessToken: authOutput.AuthenticationResult.AccessToken,
	})
	if err != nil {
		log.Println("Error fetching Cognito user:", err)
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to sign in"})
		return
	}

	uid := ""
	nickname := ""
	for _, attr := range userOutput.UserAttributes {
		switch aws.ToString(attr.Name) {
		case "sub":
			uid = aws.ToString(attr.Value)
		case "nickname":
			nickname = aws.ToString(attr.Value)
		}
	}
	if uid == "" {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	ensureUserDoc(uid, request.Email, nickname)

	token, err := utils.GenerateJWTToken(uid, request.Email)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sign-in successful", "accessToken": token})
}

// ensureUserDoc creates the diary document on first login for accounts
// that predate it (e.g. signups confirmed out of band).
func ensureUserDoc(uid, email, displayName string) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := db.GetUser(dbCtx, uid); err == nil {
		return
	}

	if displayName == "" {
		displayName = utils.ExtractNameFromEmail(email)
	}
	user := &models.User{
		UID:         uid,
		DisplayName: displayName,
		Email:       email,
		CreatedAt:   time.Now(),
	}
	if err := db.CreateUser(dbCtx, user); err != nil {
		log.Printf("Failed to seed user doc for %s: %v", uid, err)
	}
}

// ForgotPassword starts the Cognito reset flow.
func ForgotPassword(ctx *gin.Context) {
	var request structs.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "Check email format"})
		return
	}

	client, err := cognitoClient(ctx)
	if err != nil {
		log.Println("Error loading AWS config:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initiate password reset"})
		return
	}

	secretHash := utils.GenerateSecretHash(request.Email, authCfg.Cognito.AppClientId, authCfg.Cognito.AppClientSecret)
	input := cognitoidentityprovider.ForgotPasswordInput{
		ClientId:   aws.String(authCfg.Cognito.AppClientId),
		SecretHash: aws.String(secretHash),
		Username:   aws.String(request.Email),
	}

	if _, err := client.ForgotPassword(ctx, &input); err != nil {
		log.Println("Error initiating password reset:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initiate password reset", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password reset initiated. Check your email for further instructions."})
}

// VerifyForgotPassword confirms the reset code and sets the new password.
func VerifyForgotPassword(ctx *gin.Context) {
	var request structs.VerifyForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	client, err := cognitoClient(ctx)
	if err != nil {
		log.Println("Error loading AWS config:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm password reset"})
		return
	}

	secretHash := utils.GenerateSecretHash(request.Email, authCfg.Cognito.AppClientId, authCfg.Cognito.AppClientSecret)
	input := cognitoidentityprovider.ConfirmForgotPasswordInput{
		ClientId:         aws.String(authCfg.Cognito.AppClientId),
		ConfirmationCode: aws.String(request.Code),
		Password:         aws.String(request.NewPassword),
		SecretHash:       aws.String(secretHash),
		Username:         aws.String(request.Email),
	}

	if _, err := client.ConfirmForgotPassword(ctx, &input); err != nil {
		log.Println("Error confirming password reset:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm password reset", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password successfully changed"})
}

// VerifyToken checks the bearer token without touching any state.
func VerifyToken(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token format"})
		return
	}

	if _, err := utils.ParseJWTToken(tokenParts[1]); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Token is valid"})
}
