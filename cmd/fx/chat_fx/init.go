package chatfx

import (
	"go.uber.org/fx"

	"tripflow/internal/api/controllers"
	"tripflow/internal/services"
	mem "tripflow/pkg/memcache"
	"tripflow/pkg/utils"
)

var Module = fx.Provide(
	provideChatHistory, provideChatService, provideChatController)

func provideChatHistory() mem.ChatHistoryStore {
	return mem.NewChatHistory(0)
}

func provideChatService(
	tripService services.TripServiceInterface,
	aiClient utils.AIClientInterface,
	history mem.ChatHistoryStore,
) services.ChatServiceInterface {
	return services.NewChatService(tripService, aiClient, history)
}

func provideChatController(chatService services.ChatServiceInterface) *controllers.ChatController {
	return controllers.NewChatController(chatService)
}
