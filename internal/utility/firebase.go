package utility

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	firebaseApp       *firebase.App
	firebaseAuth      *auth.Client
	firebaseMessaging *messaging.Client
)

// findAPIDir tìm thư mục gốc của service (thư mục chứa config/env)
func findAPIDir() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return currentDir, nil
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", fmt.Errorf("không tìm thấy thư mục gốc của service")
		}
		currentDir = parentDir
	}
}

// InitFirebase khởi tạo Firebase Admin SDK (Auth + Cloud Messaging)
func InitFirebase(projectID, credentialsPath string) error {
	// Resolve đường dẫn credentials: absolute dùng trực tiếp, relative resolve từ thư mục gốc
	if !filepath.IsAbs(credentialsPath) {
		apiDir, err := findAPIDir()
		if err != nil {
			return fmt.Errorf("không tìm thấy thư mục gốc của service: %v", err)
		}
		credentialsPath = filepath.Join(apiDir, credentialsPath)
	}

	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
	}

	// Tạo Firebase app
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(context.Background(), &firebase.Config{
		ProjectID: projectID,
	}, opt)
	if err != nil {
		return fmt.Errorf("failed to initialize Firebase app: %v", err)
	}

	firebaseApp = app

	// Tạo Auth client
	authClient, err := app.Auth(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get Firebase Auth client: %v", err)
	}
	firebaseAuth = authClient

	// Tạo Messaging client cho push notification
	messagingClient, err := app.Messaging(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get Firebase Messaging client: %v", err)
	}
	firebaseMessaging = messagingClient

	return nil
}

// GetFirebaseAuth trả về Firebase Auth client
func GetFirebaseAuth() *auth.Client {
	return firebaseAuth
}

// GetFirebaseMessaging trả về Firebase Cloud Messaging client
func GetFirebaseMessaging() *messaging.Client {
	return firebaseMessaging
}

// VerifyIDToken verify Firebase ID token và trả về user info
func VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if firebaseAuth == nil {
		return nil, fmt.Errorf("firebase auth not initialized")
	}

	token, err := firebaseAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %v", err)
	}

	return token, nil
}
