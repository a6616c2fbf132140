package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"go.viam.com/test"
)

type User struct {
	Name string
}

type StructWithStruct struct {
	x int
	Y User
	z string
}

// assertLogMatches will fuzzy match log lines. Notably, this checks the time format, but ignores
// the exact time. And it expects a match on the filename, but the exact line number can be wrong.
func assertLogMatches(t *testing.T, actual *bytes.Buffer, expected string) {
	t.Helper()

	output, err := actual.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)

	actualParts := strings.Split(strings.TrimSuffix(output, "\n"), "\t")
	expectedParts := strings.Split(expected, "\t")
	test.That(t, len(actualParts), test.ShouldEqual, len(expectedParts))
	// Use the length of the first string as a weak verification that the result looks like a date.
	test.That(t, len(actualParts[0]), test.ShouldEqual, len(expectedParts[0]))
	test.That(t, actualParts[1], test.ShouldEqual, expectedParts[1])

	actualFilename, actualLineNumber, found := strings.Cut(actualParts[2], ":")
	test.That(t, found, test.ShouldBeTrue)
	expectedFilename, _, found := strings.Cut(expectedParts[2], ":")
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, actualFilename, test.ShouldEqual, expectedFilename)
	_, err = strconv.Atoi(actualLineNumber)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, actualParts[3], test.ShouldEqual, expectedParts[3])
	if len(actualParts) == 4 {
		return
	}

	// Map iteration order is not stable, compare the structured fields as maps.
	expectedMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(expectedParts[4]), &expectedMap), test.ShouldBeNil)
	actualMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(actualParts[4]), &actualMap), test.ShouldBeNil)
	test.That(t, actualMap, test.ShouldResemble, expectedMap)
}

func newBufferLogger(level Level) (*impl, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &impl{"", NewAtomicLevelAt(level), true, []Appender{NewWriterAppender(buf)}}, buf
}

func TestConsoleOutputFormat(t *testing.T) {
	logger, buf := newBufferLogger(DEBUG)

	logger.Info("impl Info log")
	assertLogMatches(t, buf,
		`2023-10-30T09:12:09.459Z	INFO	logging/impl_test.go:67	impl Info log`)

	logger.Infof("impl %s log", "infof")
	assertLogMatches(t, buf,
		`2023-10-30T09:45:20.764Z	INFO	logging/impl_test.go:131	impl infof log`)

	logger.Infow("impl logw", "key", "value")
	assertLogMatches(t, buf,
		`2023-10-30T13:19:45.806Z	INFO	logging/impl_test.go:132	impl logw	{"key":"value"}`)

	logger.Debugw("StructWithStruct", "key", "val", "StructWithStruct", StructWithStruct{1, User{"alice"}, "foo"})
	assertLogMatches(t, buf,
		`2023-10-30T13:20:47.129Z	DEBUG	logging/impl_test.go:123	StructWithStruct	{"StructWithStruct":{"Y":{"Name":"alice"}},"key":"val"}`)

	logger.Warnw("unpaired", "lonely")
	assertLogMatches(t, buf,
		`2023-10-30T13:20:47.129Z	WARN	logging/impl_test.go:123	unpaired	{"lonely":"unpaired log key"}`)
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(WARN)

	logger.Debug("dropped")
	logger.Info("dropped")
	test.That(t, buf.Len(), test.ShouldEqual, 0)

	logger.Error("kept")
	assertLogMatches(t, buf, `2023-10-30T09:12:09.459Z	ERROR	logging/impl_test.go:1	kept`)

	logger.SetLevel(DEBUG)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
	logger.Debugf("now %d", 1)
	assertLogMatches(t, buf, `2023-10-30T09:12:09.459Z	DEBUG	logging/impl_test.go:1	now 1`)
}

func TestContextDebugMode(t *testing.T) {
	logger, buf := newBufferLogger(INFO)

	ctx := context.Background()
	logger.CDebugf(ctx, "not in debug mode")
	test.That(t, buf.Len(), test.ShouldEqual, 0)

	ctx = EnableDebugMode(ctx, "")
	test.That(t, IsDebugMode(ctx), test.ShouldBeTrue)
	test.That(t, GetName(ctx), test.ShouldNotBeEmpty)
	logger.CDebugf(ctx, "debug %s", "mode")
	assertLogMatches(t, buf, `2023-10-30T09:12:09.459Z	DEBUG	logging/impl_test.go:1	debug mode`)

	logger.SetLevel(ERROR)
	logger.CWarnw(context.Background(), "filtered", "key", "value")
	test.That(t, buf.Len(), test.ShouldEqual, 0)
	logger.CWarnw(ctx, "warned", "key", "value")
	assertLogMatches(t, buf, `2023-10-30T09:12:09.459Z	WARN	logging/impl_test.go:1	warned	{"key":"value"}`)

	named := EnableDebugMode(context.Background(), "planner")
	test.That(t, GetName(named), test.ShouldEqual, "planner")
}

func TestSublogger(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	sub := logger.Sublogger("rrt").Sublogger("tree")

	sub.Infow("extended", "nodes", 3)
	entries := observed.All()
	test.That(t, len(entries), test.ShouldEqual, 1)
	test.That(t, entries[0].LoggerName, test.ShouldEqual, "rrt.tree")
	test.That(t, entries[0].Message, test.ShouldEqual, "extended")
	test.That(t, entries[0].ContextMap()["nodes"], test.ShouldEqual, int64(3))
	test.That(t, sub.Sync(), test.ShouldBeNil)
}

func TestLevelFromString(t *testing.T) {
	for input, expected := range map[string]Level{"debug": DEBUG, "INFO": INFO, "Warning": WARN, "error": ERROR} {
		level, err := LevelFromString(input)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, expected)
	}

	_, err := LevelFromString("verbose")
	test.That(t, err, test.ShouldNotBeNil)

	var level Level
	test.That(t, json.Unmarshal([]byte(`"warn"`), &level), test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, WARN)
	data, err := json.Marshal(ERROR)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldEqual, `"error"`)
}

func TestGlobal(t *testing.T) {
	prev := Global()
	defer ReplaceGlobal(prev)
	test.That(t, prev, test.ShouldNotBeNil)

	logger, observed := NewObservedTestLogger(t)
	ReplaceGlobal(logger)
	test.That(t, Global(), test.ShouldEqual, logger)

	Global().Infow("replaced", "n", 1)
	test.That(t, observed.FilterMessage("replaced").Len(), test.ShouldEqual, 1)
}
