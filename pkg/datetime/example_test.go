package datetime_test

import (
	"errors"
	"fmt"

	"github.com/msto63/kairos/pkg/datetime"
)

func ExampleParse() {
	dt, err := datetime.Parse("2023-01-15T08:30:00")
	if err != nil {
		panic(err)
	}
	fmt.Println(dt)
	fmt.Println(dt.Repr())
	fmt.Println(dt.Number())
	// Output:
	// 2023-01-15 08:30:00
	// Datetime(2023,1,15,8,30,0,0,0)
	// 202301150830
}

func ExampleDatetime_StartOfWeek() {
	sunday := datetime.MustParse("2023-01-15")
	fmt.Println(sunday.StartOfWeek())
	fmt.Println(sunday.EndOfWeek())
	// Output:
	// 2023-01-09 00:00:00
	// 2023-01-15 00:00:00
}

func ExampleDateRange() {
	for _, day := range datetime.DateRange(datetime.MustParse("2023-01-01"), datetime.MustParse("2023-01-04")) {
		fmt.Println(day.YMD())
	}
	// Output:
	// 20230101
	// 20230102
	// 20230103
}

func ExampleDatetime_Components() {
	var unknown datetime.Datetime
	_, err := unknown.Components()
	fmt.Println(unknown, errors.Is(err, datetime.ErrNull))
	// Output:
	// +infinity true
}

func ExampleDatetime_PreYear() {
	fmt.Println(datetime.Min().PreYear() == datetime.Min())
	// Output:
	// true
}
