package promise_test

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ccbrown/promise"
)

func ExampleDeferred() {
	d := promise.New[string]()

	d.Promise().Done(func(value string) {
		fmt.Println("resolved with", value)
	}).Fail(func(cause error) {
		fmt.Println("rejected:", cause)
	}).Always(func() {
		fmt.Println("settled")
	})

	d.Resolve("hello")
	// Output:
	// resolved with hello
	// settled
}

func ExampleDeferred_SetProgress() {
	d := promise.New[string]()
	d.Promise().Progress(func(percent int) {
		fmt.Printf("%d%%\n", percent)
	})

	d.SetProgress(25)
	d.SetProgress(100)
	d.Resolve("done")
	// Output:
	// 25%
	// 100%
}

func ExampleThen() {
	d := promise.New[string]()
	length := promise.Then(d.Promise(), func(value string) (promise.Promise[int], error) {
		return promise.New[int]().Resolve(len(value)), nil
	})
	length.Done(func(value int) {
		fmt.Println("length:", value)
	})

	d.Resolve("hello")
	// Output:
	// length: 5
}

func ExampleMap() {
	d := promise.New[int]()
	doubled := promise.Map(d.Promise(), func(value int) (int, error) {
		return value * 2, nil
	})
	doubled.Done(func(value int) {
		fmt.Println("doubled:", value)
	})

	d.Resolve(21)
	// Output:
	// doubled: 42
}

func ExampleAll() {
	first := promise.New[string]()
	second := promise.New[string]()
	combined, err := promise.All(first.Promise(), second.Promise())
	if err != nil {
		panic(err)
	}
	combined.Done(func(values []string) {
		fmt.Println(values)
	}).Fail(func(cause error) {
		fmt.Println("failed:", cause)
	})

	second.Resolve("world")
	first.Resolve("hello")
	// Output:
	// [hello world]
}

func ExampleAll_rejection() {
	first := promise.New[int]()
	second := promise.New[int]()
	combined, err := promise.All(first.Promise(), second.Promise())
	if err != nil {
		panic(err)
	}
	combined.Fail(func(cause error) {
		fmt.Println("failed:", cause)
	})

	first.Reject(errors.New("boom"))
	// Output:
	// failed: boom
}
