// Package chat 实现聊天系统的实时核心
// registry.go
// 在线注册表：UserId → 连接 的唯一真相源
package chat

import "sort"

// Registry 在线用户注册表
// 同时维护正向 (UserId→conn) 和反向 (conn→UserId) 索引，断线反查为 O(1)
// 不加锁：所有访问都由 Hub 事件循环串行化
type Registry struct {
	users map[string]*UserConn
	conns map[*UserConn]string
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{
		users: make(map[string]*UserConn),
		conns: make(map[*UserConn]string),
	}
}

// Bind 绑定 userId 与连接，重复绑定以最近一次为准
// 同一 userId 已绑定在另一条连接上时，返回被顶替的旧连接，由调用方决定处置
func (r *Registry) Bind(userId string, conn *UserConn) (displaced *UserConn) {
	if existing, ok := r.users[userId]; ok && existing != conn {
		displaced = existing
		delete(r.conns, existing)
	}
	// 连接此前若绑定了别的 userId，先清掉旧映射，保证双向索引一致
	if prevId, ok := r.conns[conn]; ok && prevId != userId {
		delete(r.users, prevId)
	}
	r.users[userId] = conn
	r.conns[conn] = userId
	return displaced
}

// Unbind 按连接句柄解绑，返回其绑定的 userId
// 未绑定的连接解绑是无操作（连接被顶替后关闭时会走到这里）
func (r *Registry) Unbind(conn *UserConn) (userId string, ok bool) {
	userId, ok = r.conns[conn]
	if !ok {
		return "", false
	}
	delete(r.conns, conn)
	delete(r.users, userId)
	return userId, true
}

// Lookup 查找 userId 对应的连接，非阻塞读
func (r *Registry) Lookup(userId string) (*UserConn, bool) {
	conn, ok := r.users[userId]
	return conn, ok
}

// Snapshot 返回当前所有在线 UserId
// 排序仅为输出稳定，协议本身不依赖顺序
func (r *Registry) Snapshot() []string {
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Connections 返回所有已绑定的连接，供广播遍历
func (r *Registry) Connections() []*UserConn {
	conns := make([]*UserConn, 0, len(r.conns))
	for conn := range r.conns {
		conns = append(conns, conn)
	}
	return conns
}

// Size 当前在线连接数
func (r *Registry) Size() int {
	return len(r.users)
}
