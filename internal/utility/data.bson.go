package utility

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ToMap chuyển đổi struct thành bản đồ thông qua mã hóa bson.
// Dùng khi cần ghi document xuống MongoDB mà vẫn giữ đúng các tag bson của struct.
func ToMap(s interface{}) (map[string]interface{}, error) {
	data, err := bson.Marshal(s)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	if err := bson.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}
