package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MarioEggi/SportsTransferApp-sub002/config"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Staff                string // Tên collection cho nhân viên (môi giới)
	TransferProcesses    string // Tên collection cho quy trình chuyển nhượng
	NotificationDelivery string // Tên collection cho delivery log của notification
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration         // Cấu hình của server
var MongoDB_ColNames = MongoDB_CollectionName{ // Tên các collection
	Staff:                "staff",
	TransferProcesses:    "transfer_processes",
	NotificationDelivery: "notification_delivery_logs",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
