package seed

import (
	"errors"

	"github.com/iceymoss/wiki-fetcher/pkg/db/objects"
	"github.com/iceymoss/wiki-fetcher/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Run 写入演示数据，库里已有主题则跳过
func Run(conn *gorm.DB) error {
	var first objects.Topic
	err := conn.First(&first).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return conn.Transaction(func(tx *gorm.DB) error {
		// 默认令牌，生成一次打印到日志方便首次调用
		token, err := objects.GenerateKey()
		if err != nil {
			return err
		}
		key := &objects.APIKey{
			Key:      token,
			Name:     "Default API Key",
			IsActive: true,
		}
		if err := tx.Create(key).Error; err != nil {
			return err
		}
		logger.Info("默认 API Key 已创建", zap.String("key", token))

		for _, t := range defaultTopics() {
			if err := tx.Create(t).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func defaultTopics() []*objects.Topic {
	return []*objects.Topic{
		{
			Name:        "Java Programming",
			Description: "Learn Java programming from basics to advanced OOP concepts",
			Contents: []objects.Content{
				{
					Title: "Java Programming: Complete Guide",
					Explanation: `
Java is a powerful, object-oriented programming language widely used for building scalable applications.

**Key Concepts:**

1. **Object-Oriented Programming (OOP)**: Java is built on OOP principles including encapsulation, inheritance, and polymorphism.

2. **Platform Independence**: Java code is compiled to bytecode and runs on the Java Virtual Machine (JVM), making it platform-independent.

3. **Strong Typing**: Java is strongly typed, which helps catch errors at compile time.

4. **Memory Management**: Automatic garbage collection manages memory, reducing memory leaks.

5. **Collections Framework**: Java provides powerful data structures like ArrayList, HashMap, and HashSet for managing groups of objects.

6. **Exception Handling**: Java's robust exception handling mechanism helps handle errors gracefully.

**Best Practices:**
- Follow naming conventions (camelCase for variables/methods, PascalCase for classes)
- Use access modifiers (public, private, protected) to control visibility
- Write reusable, modular code
- Handle exceptions appropriately
- Use generics for type safety
`,
					CodeExamples: `
// Example 1: Basic Class Definition
public class Person {
    private String name;
    private int age;

    public Person(String name, int age) {
        this.name = name;
        this.age = age;
    }

    public void displayInfo() {
        System.out.println("Name: " + name + ", Age: " + age);
    }
}

// Example 2: Using Collections
import java.util.*;

public class CollectionsExample {
    public static void main(String[] args) {
        List<String> fruits = new ArrayList<>();
        fruits.add("Apple");
        fruits.add("Banana");
        fruits.add("Orange");

        for (String fruit : fruits) {
            System.out.println(fruit);
        }
    }
}

// Example 3: Exception Handling
public class ExceptionHandling {
    public static void main(String[] args) {
        try {
            int[] numbers = {1, 2, 3};
            System.out.println(numbers[5]); // This will throw ArrayIndexOutOfBoundsException
        } catch (ArrayIndexOutOfBoundsException e) {
            System.out.println("Array index out of bounds: " + e.getMessage());
        } finally {
            System.out.println("Cleanup code here");
        }
    }
}
`,
				},
			},
		},
		{
			Name:        "Python Fundamentals",
			Description: "Master Python basics, functions, and data structures",
			Contents: []objects.Content{
				{
					Title: "Python Fundamentals: A Complete Overview",
					Explanation: `
Python is a versatile, easy-to-learn programming language known for its readability and powerful libraries.

**Key Concepts:**

1. **Dynamic Typing**: Variables in Python don't require explicit type declarations.

2. **Indentation-based Syntax**: Python uses indentation to define code blocks, making code more readable.

3. **Functions**: Functions are first-class objects that can be passed as arguments and returned from other functions.

4. **Data Structures**: Python provides built-in data structures like lists, tuples, dictionaries, and sets.

5. **List Comprehensions**: Concise way to create and modify lists.

6. **Modules and Packages**: Python's modular architecture allows you to organize code into reusable modules.

**Key Features:**
- Simple and expressive syntax
- Extensive standard library
- Support for multiple programming paradigms (OOP, functional, procedural)
- Strong community and ecosystem
- Great for web development, data science, and automation
`,
					CodeExamples: `
# Example 1: Function Definition and Usage
def greet(name, greeting="Hello"):
    return f"{greeting}, {name}!"

result = greet("Alice")
print(result)  # Output: Hello, Alice!

# Example 2: List Comprehension
numbers = [1, 2, 3, 4, 5]
squares = [x**2 for x in numbers if x % 2 == 0]
print(squares)  # Output: [4, 16]

# Example 3: Working with Dictionaries
student = {
    'name': 'Bob',
    'age': 20,
    'courses': ['Math', 'Science', 'English']
}

for key, value in student.items():
    print(f"{key}: {value}")

# Example 4: Exception Handling
try:
    file = open('data.txt', 'r')
    content = file.read()
except FileNotFoundError:
    print("File not found!")
finally:
    file.close()
`,
				},
			},
		},
		{
			Name:        "Web Development",
			Description: "Learn HTML, CSS, and JavaScript fundamentals",
			Contents: []objects.Content{
				{
					Title: "Web Development Fundamentals",
					Explanation: `
Web development involves creating websites and web applications using HTML, CSS, and JavaScript.

**HTML (Structure):**
- Provides the structure and content of web pages
- Uses semantic tags for better accessibility and SEO
- Forms enable user input and interaction

**CSS (Styling):**
- Controls the visual presentation of HTML elements
- Flexbox and CSS Grid for modern layouts
- Media queries for responsive design
- CSS preprocessors like SASS for advanced styling

**JavaScript (Interactivity):**
- Adds interactivity and dynamic behavior to web pages
- DOM manipulation for runtime changes
- Event handling for user interactions
- Asynchronous programming with Promises and async/await

**Key Concepts:**
- Responsive Design: Websites that work on all device sizes
- Progressive Enhancement: Build a basic experience, enhance with JavaScript
- Web Accessibility: Make websites usable for everyone
- Performance Optimization: Load times and rendering speed
- Security: Protect against XSS, CSRF, and other vulnerabilities
`,
					CodeExamples: `
<!-- Example 1: Semantic HTML -->
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width">
    <title>My Website</title>
</head>
<body>
    <header>
        <h1>Welcome</h1>
    </header>
    <main>
        <article>
            <h2>Article Title</h2>
            <p>Article content here...</p>
        </article>
    </main>
</body>
</html>

/* Example 2: Responsive CSS */
.container {
    display: flex;
    justify-content: space-between;
}

@media (max-width: 768px) {
    .container {
        flex-direction: column;
    }
}

// Example 3: JavaScript DOM Manipulation
document.addEventListener('DOMContentLoaded', function() {
    const button = document.getElementById('myButton');
    button.addEventListener('click', function() {
        alert('Button clicked!');
    });
});

// Example 4: Async/Await with Fetch
async function fetchData() {
    try {
        const response = await fetch('/api/data');
        const data = await response.json();
        console.log(data);
    } catch (error) {
        console.error('Error:', error);
    }
}
`,
				},
			},
		},
	}
}
