package querycache

import (
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"fmt"

	"github.com/goccy/go-json"
)

const (
	OperationFindMany          = "FindMany"
	OperationCount             = "Count"
	OperationFindManyWithCount = "FindManyWithCount"
	OperationFindFirst         = "FindFirst"
)

// HookName returns the hook identifier used as the first element of a key,
// e.g. useMedicalRecordFindMany.
func HookName(model, operation string) string {
	return "use" + model + operation
}

// HookKey encodes [hook, args] as JSON. Nil args encode as {}. Map keys are
// sorted by the encoder, so equal arguments always produce equal keys.
func HookKey(hook string, args *requests.FindArgs) (string, error) {
	var payload interface{} = struct{}{}
	if args != nil {
		payload = args
	}

	encoded, err := json.Marshal([]interface{}{hook, payload})
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func generationKey(prefix, entity string) string {
	return fmt.Sprintf("%s:%s:%s", prefix, entity, constvars.RedisKeyGenerationSuffix)
}

func entryKey(prefix, entity string, generation int64, hookKey string) string {
	return fmt.Sprintf("%s:%s:%d:%s", prefix, entity, generation, hookKey)
}
