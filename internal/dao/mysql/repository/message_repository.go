package repository

import (
	"quick_chat_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 创建消息
func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "create message")
	}
	return nil
}

// FindBetween 按双方 UUID 查找消息（双向，按创建时间升序）
func (r *messageRepository) FindBetween(userOneId, userTwoId string) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("(send_id = ? AND receive_id = ?) OR (send_id = ? AND receive_id = ?)",
		userOneId, userTwoId, userTwoId, userOneId).Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "find messages user1=%s user2=%s", userOneId, userTwoId)
	}
	return messages, nil
}

// MarkRead 将 sender 发给 receiver 的未读消息置为已读，返回更新条数
func (r *messageRepository) MarkRead(senderId, receiverId string) (int64, error) {
	res := r.db.Model(&model.Message{}).
		Where("send_id = ? AND receive_id = ? AND is_read = ?", senderId, receiverId, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "mark messages read sender=%s receiver=%s", senderId, receiverId)
	}
	return res.RowsAffected, nil
}

// CountUnreadBySender 统计发给 receiver 的未读消息数，按发送者分组
func (r *messageRepository) CountUnreadBySender(receiverId string) (map[string]int64, error) {
	type row struct {
		SendId string
		Total  int64
	}
	var rows []row
	if err := r.db.Model(&model.Message{}).
		Select("send_id, COUNT(*) AS total").
		Where("receive_id = ? AND is_read = ?", receiverId, false).
		Group("send_id").
		Scan(&rows).Error; err != nil {
		return nil, wrapDBErrorf(err, "count unread receiver=%s", receiverId)
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.SendId] = r.Total
	}
	return counts, nil
}
